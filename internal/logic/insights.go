package logic

import (
	"fmt"

	"github.com/kvkstats/ranking-api/internal/models"
)

// MaxInsights caps the number of sentences returned for one simulation
const MaxInsights = 3

// streakInsightMin is the run length at which a streak is worth mentioning
const streakInsightMin = 2

// InsightInput is everything the insight rules look at
type InsightInput struct {
	Current       models.KingdomStats
	Projected     models.KingdomStats
	Events        []models.SimulatedEvent
	ScoreDelta    float64
	CurrentTier   models.Tier
	ProjectedTier models.Tier
}

type insightRule func(in InsightInput) (string, bool)

// insightRules are evaluated in this order; the first MaxInsights matches win.
// A tier change always comes first so the cap never hides it.
var insightRules = []insightRule{
	tierChanged,
	battleStreakBuilt,
	prepStreakBuilt,
	battleStreakBroken,
	prepStreakBroken,
	veteranReached,
	newDominations,
	newInvasions,
}

// GenerateInsights explains a projection in at most MaxInsights sentences.
// Identical inputs always produce the same sentences in the same order.
func GenerateInsights(in InsightInput) []string {
	out := make([]string, 0, MaxInsights)
	for _, rule := range insightRules {
		if len(out) == MaxInsights {
			break
		}
		if msg, ok := rule(in); ok {
			out = append(out, msg)
		}
	}
	if len(out) == 0 && in.ScoreDelta > 0 {
		out = append(out, fmt.Sprintf("These results would raise the score by %.2f points.", in.ScoreDelta))
	}
	return out
}

func battleStreakBuilt(in InsightInput) (string, bool) {
	return streakBuilt("Battle", in.Current.CurrentBattleStreak, in.Projected.CurrentBattleStreak)
}

func prepStreakBuilt(in InsightInput) (string, bool) {
	return streakBuilt("Preparation", in.Current.CurrentPrepStreak, in.Projected.CurrentPrepStreak)
}

func streakBuilt(phase string, before, after int) (string, bool) {
	if after < streakInsightMin || after <= before {
		return "", false
	}
	return fmt.Sprintf("%s win streak grows to %d, adding momentum to the score.", phase, after), true
}

func battleStreakBroken(in InsightInput) (string, bool) {
	return streakBroken("Battle", in.Current.CurrentBattleStreak, in.Projected.CurrentBattleStreak)
}

func prepStreakBroken(in InsightInput) (string, bool) {
	return streakBroken("Preparation", in.Current.CurrentPrepStreak, in.Projected.CurrentPrepStreak)
}

func streakBroken(phase string, before, after int) (string, bool) {
	if before < streakInsightMin || after != 0 {
		return "", false
	}
	return fmt.Sprintf("A %s loss would end the current %d-KvK win streak.", phase, before), true
}

func veteranReached(in InsightInput) (string, bool) {
	if in.Current.TotalMatches >= VeteranThreshold || in.Projected.TotalMatches < VeteranThreshold {
		return "", false
	}
	return fmt.Sprintf("Reaching %d KvKs removes the experience damping on the score.", VeteranThreshold), true
}

func newDominations(in InsightInput) (string, bool) {
	gained := in.Projected.Dominations - in.Current.Dominations
	if gained <= 0 || in.Projected.TotalMatches == 0 {
		return "", false
	}
	rate := float64(in.Projected.Dominations) / float64(in.Projected.TotalMatches) * 100
	return fmt.Sprintf("%d new %s would lift the domination rate to %.0f%%.",
		gained, plural(gained, "domination", "dominations"), rate), true
}

func newInvasions(in InsightInput) (string, bool) {
	gained := in.Projected.Invasions - in.Current.Invasions
	if gained <= 0 {
		return "", false
	}
	return fmt.Sprintf("Warning: %d %s would weigh on the domination multiplier.",
		gained, plural(gained, "invasion", "invasions")), true
}

func tierChanged(in InsightInput) (string, bool) {
	from, to := TierRank(in.CurrentTier), TierRank(in.ProjectedTier)
	switch {
	case to > from && isEliteTier(in.ProjectedTier):
		return fmt.Sprintf("These results would lift the kingdom into the elite %s tier.", in.ProjectedTier), true
	case to > from:
		return fmt.Sprintf("These results would move the kingdom up from tier %s to tier %s.", in.CurrentTier, in.ProjectedTier), true
	case to < from:
		return fmt.Sprintf("Warning: these results would drop the kingdom from tier %s to tier %s.", in.CurrentTier, in.ProjectedTier), true
	default:
		return "", false
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
