// Package cli implements the kvkscore command line tool, an offline front end
// to the scoring engine.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var jsonOutput bool

// NewRootCmd builds the kvkscore command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kvkscore",
		Short: "KvK kingdom scoring tool",
		Long: `Score kingdoms from their KvK records without a running server.
Inputs are JSON files; pass "-" to read from stdin.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")

	root.AddCommand(newExtractCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newTierCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// readJSON decodes the file at path, or stdin for "-", into dst.
func readJSON(cmd *cobra.Command, path string, dst interface{}) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
