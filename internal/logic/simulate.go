package logic

import (
	"fmt"

	"github.com/kvkstats/ranking-api/internal/models"
)

// Simulate applies hypothetical future KvKs, in order, to a copy of stats and
// compares the projected score with the current one. The caller's stats are
// never modified.
func Simulate(stats models.KingdomStats, events []models.SimulatedEvent) (models.SimulationResult, error) {
	if err := ValidateStats(stats); err != nil {
		return models.SimulationResult{}, err
	}

	projected := stats.Clone()
	for i, ev := range events {
		prepWon, err := parseSimulatedResult(ev.PrepResult)
		if err != nil {
			return models.SimulationResult{}, fmt.Errorf("event %d prep_result: %w", i, err)
		}
		battleWon, err := parseSimulatedResult(ev.BattleResult)
		if err != nil {
			return models.SimulationResult{}, fmt.Errorf("event %d battle_result: %w", i, err)
		}
		applyEvent(&projected, prepWon, battleWon)
	}

	current := computeScore(stats)
	next := computeScore(projected)

	delta := roundTo(next.FinalScore-current.FinalScore, ScoreDecimals)
	pct := 0.0
	if current.FinalScore != 0 {
		pct = roundTo(delta/current.FinalScore*100, ScoreDecimals)
	}

	insights := GenerateInsights(InsightInput{
		Current:       stats,
		Projected:     projected,
		Events:        events,
		ScoreDelta:    delta,
		CurrentTier:   current.Tier,
		ProjectedTier: next.Tier,
	})

	return models.SimulationResult{
		Current:        current,
		Projected:      next,
		ProjectedStats: projected,
		ScoreDelta:     delta,
		PercentDelta:   pct,
		Attribution:    attribute(factorsOf(stats), factorsOf(projected), delta),
		CurrentTier:    current.Tier,
		ProjectedTier:  next.Tier,
		TierChanged:    current.Tier != next.Tier,
		Insights:       insights,
	}, nil
}

// applyEvent advances s by one KvK.
//
// Unlike ExtractStats, a projected loss resets that phase's streak to 0
// instead of starting a negative run.
func applyEvent(s *models.KingdomStats, prepWon, battleWon bool) {
	s.TotalMatches++

	if prepWon {
		s.PrepWins++
	} else {
		s.PrepLosses++
	}
	if battleWon {
		s.BattleWins++
	} else {
		s.BattleLosses++
	}

	s.CurrentPrepStreak = projectStreak(s.CurrentPrepStreak, prepWon)
	s.CurrentBattleStreak = projectStreak(s.CurrentBattleStreak, battleWon)

	switch {
	case prepWon && battleWon:
		s.Dominations++
	case !prepWon && !battleWon:
		s.Invasions++
	}

	recent := make([]models.Outcome, 0, RecentWindow)
	recent = append(recent, ClassifyOutcome(prepWon, battleWon))
	for _, o := range s.RecentOutcomes {
		if len(recent) == RecentWindow {
			break
		}
		recent = append(recent, o)
	}
	s.RecentOutcomes = recent
}

func projectStreak(streak int, won bool) int {
	if !won {
		return 0
	}
	if streak > 0 {
		return streak + 1
	}
	return 1
}

// parseSimulatedResult only accepts a decided phase; placeholders are invalid here.
func parseSimulatedResult(r models.PhaseResult) (bool, error) {
	won, ok, err := parsePhaseResult(r)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, invalid("phase result", "simulated events need win or loss, got %q", r)
	}
	return won, nil
}

// attribute isolates each driver by moving it alone while the other factors
// stay at their current values. Whatever is left is credited to the base score
// (win rates, domination rate, history bonus and clamping).
func attribute(cur, next factors, delta float64) models.ScoreAttribution {
	experience := cur.base * cur.domInv * cur.form * cur.streak * (next.experience - cur.experience)
	streak := cur.base * cur.domInv * cur.form * (next.streak - cur.streak) * cur.experience
	form := cur.base * cur.domInv * (next.form - cur.form) * cur.streak * cur.experience

	return models.ScoreAttribution{
		ExperienceGain: roundTo(experience, ScoreDecimals),
		StreakImpact:   roundTo(streak, ScoreDecimals),
		FormBonus:      roundTo(form, ScoreDecimals),
		BaseChange:     roundTo(delta-experience-streak-form, ScoreDecimals),
	}
}
