// Package report renders kingdom stats, score breakdowns and projections as
// terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kvkstats/ranking-api/internal/models"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintStats prints the canonical stats of one kingdom.
func PrintStats(w io.Writer, s models.KingdomStats) {
	table := newTable(w)
	table.Header("KVKS", "PREP W-L", "BATTLE W-L", "DOM", "INV", "PREP STREAK", "BATTLE STREAK", "RECENT")
	table.Append(
		strconv.Itoa(s.TotalMatches),
		fmt.Sprintf("%d-%d", s.PrepWins, s.PrepLosses),
		fmt.Sprintf("%d-%d", s.BattleWins, s.BattleLosses),
		strconv.Itoa(s.Dominations),
		strconv.Itoa(s.Invasions),
		strconv.Itoa(s.CurrentPrepStreak),
		strconv.Itoa(s.CurrentBattleStreak),
		recentString(s.RecentOutcomes),
	)
	table.Render()
}

// PrintBreakdown prints every factor of a score followed by the result.
func PrintBreakdown(w io.Writer, b models.ScoreBreakdown) {
	fmt.Fprintf(w, "\nFormula v%s  |  Score: %.2f  |  Tier: %s\n\n", b.FormulaVersion, b.FinalScore, b.Tier)

	table := newTable(w)
	table.Header("FACTOR", "VALUE")
	table.Append("base", fmt.Sprintf("%.2f", b.BaseScore))
	table.Append("dom/inv", fmt.Sprintf("x%.3f", b.DomInvMultiplier))
	table.Append("recent form", fmt.Sprintf("x%.3f", b.RecentFormMultiplier))
	table.Append("streak", fmt.Sprintf("x%.3f", b.StreakMultiplier))
	table.Append("experience", fmt.Sprintf("x%.3f", b.ExperienceFactor))
	table.Append("history", fmt.Sprintf("+%.2f", b.HistoryBonus))
	table.Append("final", fmt.Sprintf("%.2f", b.FinalScore))
	table.Render()
}

// PrintSimulation prints the current and projected scores side by side,
// the delta attribution and the insights.
func PrintSimulation(w io.Writer, r models.SimulationResult) {
	table := newTable(w)
	table.Header(" ", "CURRENT", "PROJECTED")
	table.Append("score", fmt.Sprintf("%.2f", r.Current.FinalScore), fmt.Sprintf("%.2f", r.Projected.FinalScore))
	table.Append("tier", string(r.CurrentTier), string(r.ProjectedTier))
	table.Append("experience", fmt.Sprintf("x%.3f", r.Current.ExperienceFactor), fmt.Sprintf("x%.3f", r.Projected.ExperienceFactor))
	table.Append("streak", fmt.Sprintf("x%.3f", r.Current.StreakMultiplier), fmt.Sprintf("x%.3f", r.Projected.StreakMultiplier))
	table.Render()

	fmt.Fprintf(w, "\nDelta: %+.2f (%+.2f%%)\n", r.ScoreDelta, r.PercentDelta)
	fmt.Fprintf(w, "  experience %+.2f  |  streak %+.2f  |  form %+.2f  |  base %+.2f\n",
		r.Attribution.ExperienceGain, r.Attribution.StreakImpact, r.Attribution.FormBonus, r.Attribution.BaseChange)

	if len(r.Insights) > 0 {
		fmt.Fprintln(w)
		for _, s := range r.Insights {
			fmt.Fprintf(w, "  * %s\n", s)
		}
	}
}

// PrintTier prints a score with its tier.
func PrintTier(w io.Writer, score float64, tier models.Tier) {
	fmt.Fprintf(w, "%.2f -> %s\n", score, tier)
}

func recentString(recent []models.Outcome) string {
	if len(recent) == 0 {
		return "-"
	}
	codes := make([]string, len(recent))
	for i, o := range recent {
		codes[i] = outcomeCode(o)
	}
	return strings.Join(codes, " ")
}

func outcomeCode(o models.Outcome) string {
	switch o {
	case models.OutcomeDomination:
		return "D"
	case models.OutcomeComeback:
		return "C"
	case models.OutcomeReversal:
		return "R"
	case models.OutcomeInvasion:
		return "I"
	}
	return "?"
}
