package logic

import (
	"sort"
	"strings"

	"github.com/kvkstats/ranking-api/internal/models"
)

// played is a bye-filtered KvK reduced to its two phase results
type played struct {
	kvk       int
	prepWon   bool
	battleWon bool
}

// ExtractStats turns a raw profile into KingdomStats.
//
// Counters are copied from the pre-aggregated profile fields. Only the streaks
// and the recent outcome window are derived from the history, after byes are
// dropped and the remaining records are ordered most recent first. Missing
// counters and an empty history yield the zero stats; negative counters and
// unknown phase results are rejected.
func ExtractStats(p models.KingdomProfile) (models.KingdomStats, error) {
	counters := []struct {
		name  string
		value int
	}{
		{"total_kvks", p.TotalMatches},
		{"prep_wins", p.PrepWins},
		{"prep_losses", p.PrepLosses},
		{"battle_wins", p.BattleWins},
		{"battle_losses", p.BattleLosses},
		{"dominations", p.Dominations},
		{"invasions", p.Invasions},
	}
	for _, c := range counters {
		if c.value < 0 {
			return models.KingdomStats{}, invalid(c.name, "must be >= 0, got %d", c.value)
		}
	}

	history, err := filterByes(p.History)
	if err != nil {
		return models.KingdomStats{}, err
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].kvk > history[j].kvk
	})

	prep := make([]bool, len(history))
	battle := make([]bool, len(history))
	for i, h := range history {
		prep[i] = h.prepWon
		battle[i] = h.battleWon
	}

	recent := make([]models.Outcome, 0, RecentWindow)
	for i := 0; i < len(history) && i < RecentWindow; i++ {
		recent = append(recent, ClassifyOutcome(history[i].prepWon, history[i].battleWon))
	}

	stats := models.KingdomStats{
		TotalMatches:        p.TotalMatches,
		PrepWins:            p.PrepWins,
		PrepLosses:          p.PrepLosses,
		BattleWins:          p.BattleWins,
		BattleLosses:        p.BattleLosses,
		Dominations:         p.Dominations,
		Invasions:           p.Invasions,
		RecentOutcomes:      recent,
		CurrentPrepStreak:   currentStreak(prep),
		CurrentBattleStreak: currentStreak(battle),
	}
	if err := ValidateStats(stats); err != nil {
		return models.KingdomStats{}, err
	}
	return stats, nil
}

// IsBye reports whether a record carries no real match
func IsBye(r models.MatchRecord) bool {
	if markedBye(r) {
		return true
	}
	_, prepOK, _ := parsePhaseResult(r.PrepResult)
	_, battleOK, _ := parsePhaseResult(r.BattleResult)
	return !prepOK || !battleOK
}

// markedBye reports a bye tag or a missing opponent; phase fields are not read
func markedBye(r models.MatchRecord) bool {
	return strings.EqualFold(strings.TrimSpace(r.OverallResult), "bye") || r.OpponentKingdom == 0
}

// filterByes drops byes before their phase fields are parsed, so leftovers in
// a bye row never fail the extraction.
func filterByes(records []models.MatchRecord) ([]played, error) {
	out := make([]played, 0, len(records))
	for _, r := range records {
		if r.OpponentKingdom < 0 {
			return nil, invalid("opponent_kingdom", "kvk %d: negative kingdom id %d", r.KvKNumber, r.OpponentKingdom)
		}
		if markedBye(r) {
			continue
		}
		prepWon, prepOK, err := parsePhaseResult(r.PrepResult)
		if err != nil {
			return nil, err
		}
		battleWon, battleOK, err := parsePhaseResult(r.BattleResult)
		if err != nil {
			return nil, err
		}
		if !prepOK || !battleOK {
			continue
		}
		out = append(out, played{kvk: r.KvKNumber, prepWon: prepWon, battleWon: battleWon})
	}
	return out, nil
}

// currentStreak returns the signed length of the run that starts at the most
// recent result: +n for n straight wins, -n for n straight losses.
func currentStreak(results []bool) int {
	if len(results) == 0 {
		return 0
	}
	first := results[0]
	n := 0
	for _, won := range results {
		if won != first {
			break
		}
		n++
	}
	if first {
		return n
	}
	return -n
}

// ValidateStats checks the KingdomStats contract. Inputs are never clamped;
// only the formula outputs are.
func ValidateStats(s models.KingdomStats) error {
	counters := []struct {
		name  string
		value int
	}{
		{"total_matches", s.TotalMatches},
		{"prep_wins", s.PrepWins},
		{"prep_losses", s.PrepLosses},
		{"battle_wins", s.BattleWins},
		{"battle_losses", s.BattleLosses},
		{"dominations", s.Dominations},
		{"invasions", s.Invasions},
	}
	for _, c := range counters {
		if c.value < 0 {
			return invalid(c.name, "must be >= 0, got %d", c.value)
		}
	}
	if s.Dominations+s.Invasions > s.TotalMatches {
		return invalid("dominations", "dominations (%d) + invasions (%d) exceed total matches (%d)",
			s.Dominations, s.Invasions, s.TotalMatches)
	}
	if len(s.RecentOutcomes) > RecentWindow {
		return invalid("recent_outcomes", "at most %d entries, got %d", RecentWindow, len(s.RecentOutcomes))
	}
	for i, o := range s.RecentOutcomes {
		if _, ok := outcomeValues[o]; !ok {
			return invalid("recent_outcomes", "entry %d: unknown outcome %q", i, o)
		}
	}
	return nil
}
