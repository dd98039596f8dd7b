package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvkstats/ranking-api/internal/logic"
	"github.com/kvkstats/ranking-api/internal/models"
	"github.com/kvkstats/ranking-api/internal/report"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <profile.json>",
		Short: "Derive canonical stats from a raw kingdom profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile models.KingdomProfile
			if err := readJSON(cmd, args[0], &profile); err != nil {
				return err
			}
			stats, err := logic.ExtractStats(profile)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			report.PrintStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func newScoreCmd() *cobra.Command {
	var fromProfile bool
	cmd := &cobra.Command{
		Use:   "score <stats.json>",
		Short: "Score a kingdom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := loadStats(cmd, args[0], fromProfile)
			if err != nil {
				return err
			}
			b, err := logic.ComputeScore(stats)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), b)
			}
			report.PrintBreakdown(cmd.OutOrStdout(), b)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromProfile, "profile", false, "input is a raw profile, extract stats first")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	var (
		fromProfile bool
		eventsFlag  string
	)
	cmd := &cobra.Command{
		Use:   "simulate <stats.json>",
		Short: "Project hypothetical KvK results",
		Long: `Apply hypothetical KvKs in order and compare the scores.
Each event is two letters, Preparation then Battle: W for a win, L for a loss.
Example: --events WW,LW,WL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := parseEvents(eventsFlag)
			if err != nil {
				return err
			}
			stats, err := loadStats(cmd, args[0], fromProfile)
			if err != nil {
				return err
			}
			res, err := logic.Simulate(stats, events)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			report.PrintSimulation(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromProfile, "profile", false, "input is a raw profile, extract stats first")
	cmd.Flags().StringVar(&eventsFlag, "events", "", "comma separated events, e.g. WW,LW")
	return cmd
}

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <score>",
		Short: "Classify a score into a tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
				return fmt.Errorf("score must be a finite number, got %q", args[0])
			}
			tier := logic.ClassifyTier(score)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), models.TierResponse{Score: score, Tier: tier, Rank: logic.TierRank(tier)})
			}
			report.PrintTier(cmd.OutOrStdout(), score, tier)
			return nil
		},
	}
}

func loadStats(cmd *cobra.Command, path string, fromProfile bool) (models.KingdomStats, error) {
	if fromProfile {
		var profile models.KingdomProfile
		if err := readJSON(cmd, path, &profile); err != nil {
			return models.KingdomStats{}, err
		}
		return logic.ExtractStats(profile)
	}

	var stats models.KingdomStats
	if err := readJSON(cmd, path, &stats); err != nil {
		return models.KingdomStats{}, err
	}
	for i, o := range stats.RecentOutcomes {
		parsed, err := logic.ParseOutcome(string(o))
		if err != nil {
			return models.KingdomStats{}, err
		}
		stats.RecentOutcomes[i] = parsed
	}
	return stats, nil
}

// parseEvents reads "WW,LW" style event lists.
func parseEvents(s string) ([]models.SimulatedEvent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var events []models.SimulatedEvent
	for _, code := range strings.Split(s, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 2 {
			return nil, fmt.Errorf("event %q: want two letters, e.g. WL", code)
		}
		prep, err := phaseFromLetter(code[0])
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", code, err)
		}
		battle, err := phaseFromLetter(code[1])
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", code, err)
		}
		events = append(events, models.SimulatedEvent{PrepResult: prep, BattleResult: battle})
	}
	return events, nil
}

func phaseFromLetter(c byte) (models.PhaseResult, error) {
	switch c {
	case 'W':
		return models.PhaseWin, nil
	case 'L':
		return models.PhaseLoss, nil
	}
	return "", fmt.Errorf("unknown result %q", c)
}
