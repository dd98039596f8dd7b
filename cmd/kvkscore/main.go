// Command kvkscore scores kingdoms from JSON files on the command line.
package main

import "github.com/kvkstats/ranking-api/internal/cli"

func main() {
	cli.Execute()
}
