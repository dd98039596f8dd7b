package models

import "time"

// Outcome classifies a single KvK by the result of both phases
type Outcome string

const (
	OutcomeDomination Outcome = "domination" // won Preparation and Battle
	OutcomeComeback   Outcome = "comeback"   // lost Preparation, won Battle
	OutcomeReversal   Outcome = "reversal"   // won Preparation, lost Battle
	OutcomeInvasion   Outcome = "invasion"   // lost Preparation and Battle
)

// PhaseResult is the result of one phase of a KvK
type PhaseResult string

const (
	PhaseWin  PhaseResult = "win"
	PhaseLoss PhaseResult = "loss"
)

// Tier is the discrete performance band derived from a final score
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// KingdomStats is the canonical per-kingdom input of the scoring formula.
// Prep* fields track the Preparation phase, Battle* fields the Battle phase.
type KingdomStats struct {
	TotalMatches        int       `json:"total_matches"`
	PrepWins            int       `json:"prep_wins"`
	PrepLosses          int       `json:"prep_losses"`
	BattleWins          int       `json:"battle_wins"`
	BattleLosses        int       `json:"battle_losses"`
	Dominations         int       `json:"dominations"`
	Invasions           int       `json:"invasions"`
	RecentOutcomes      []Outcome `json:"recent_outcomes"` // most recent first, at most 5
	CurrentPrepStreak   int       `json:"current_prep_streak"`
	CurrentBattleStreak int       `json:"current_battle_streak"`
}

// Clone returns a deep copy that shares no memory with s
func (s KingdomStats) Clone() KingdomStats {
	out := s
	if s.RecentOutcomes != nil {
		out.RecentOutcomes = make([]Outcome, len(s.RecentOutcomes))
		copy(out.RecentOutcomes, s.RecentOutcomes)
	}
	return out
}

// MatchRecord is one row of a kingdom's KvK history as delivered by the data store.
// Byes carry an empty or placeholder phase result, a "bye" overall tag or opponent 0.
type MatchRecord struct {
	KvKNumber       int         `json:"kvk_number"`
	PrepResult      PhaseResult `json:"prep_result"`
	BattleResult    PhaseResult `json:"battle_result"`
	OverallResult   string      `json:"overall_result"`
	OpponentKingdom int         `json:"opponent_kingdom"`
}

// KingdomProfile is the raw, pre-aggregated profile of a kingdom.
// Counters may arrive as JSON numbers or numeric strings (see flex_json.go).
type KingdomProfile struct {
	KingdomID    int           `json:"kingdom_id"`
	TotalMatches int           `json:"total_kvks"`
	PrepWins     int           `json:"prep_wins"`
	PrepLosses   int           `json:"prep_losses"`
	BattleWins   int           `json:"battle_wins"`
	BattleLosses int           `json:"battle_losses"`
	Dominations  int           `json:"dominations"`
	Invasions    int           `json:"invasions"`
	History      []MatchRecord `json:"history"`
}

// ScoreBreakdown explains how a final score was assembled
type ScoreBreakdown struct {
	FormulaVersion       string  `json:"formula_version"`
	BaseScore            float64 `json:"base_score"`
	DomInvMultiplier     float64 `json:"dom_inv_multiplier"`
	RecentFormMultiplier float64 `json:"recent_form_multiplier"`
	StreakMultiplier     float64 `json:"streak_multiplier"`
	ExperienceFactor     float64 `json:"experience_factor"`
	HistoryBonus         float64 `json:"history_bonus"`
	RawScore             float64 `json:"raw_score"` // before clamping
	FinalScore           float64 `json:"final_score"`
	Tier                 Tier    `json:"tier"`
}

// SimulatedEvent is one hypothetical future KvK. Results are read like
// recorded ones ("win", "W", "Loss", ...) but must be decided.
type SimulatedEvent struct {
	PrepResult   PhaseResult `json:"prep_result" validate:"required" example:"win"`
	BattleResult PhaseResult `json:"battle_result" validate:"required" example:"loss"`
}

// ScoreAttribution splits a projected score delta into its drivers.
// BaseChange is the residual not explained by the other three.
type ScoreAttribution struct {
	ExperienceGain float64 `json:"experience_gain"`
	StreakImpact   float64 `json:"streak_impact"`
	FormBonus      float64 `json:"form_bonus"`
	BaseChange     float64 `json:"base_change"`
}

// SimulationResult compares the current score with a projected one
type SimulationResult struct {
	Current        ScoreBreakdown   `json:"current"`
	Projected      ScoreBreakdown   `json:"projected"`
	ProjectedStats KingdomStats     `json:"projected_stats"`
	ScoreDelta     float64          `json:"score_delta"`
	PercentDelta   float64          `json:"percent_delta"`
	Attribution    ScoreAttribution `json:"attribution"`
	CurrentTier    Tier             `json:"current_tier"`
	ProjectedTier  Tier             `json:"projected_tier"`
	TierChanged    bool             `json:"tier_changed"`
	Insights       []string         `json:"insights"`
}

// KingdomScore is a scored kingdom as served by the API
type KingdomScore struct {
	KingdomID   int            `json:"kingdom_id"`
	Fingerprint string         `json:"fingerprint"`
	Cached      bool           `json:"cached"`
	Stats       KingdomStats   `json:"stats"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	ComputedAt  time.Time      `json:"computed_at"`
}

// ScoreSnapshot is one row of the ClickHouse score history
type ScoreSnapshot struct {
	ID             string    `json:"id"`
	KingdomID      int       `json:"kingdom_id"`
	FormulaVersion string    `json:"formula_version"`
	Fingerprint    string    `json:"fingerprint"`
	TotalMatches   int       `json:"total_matches"`
	BaseScore      float64   `json:"base_score"`
	FinalScore     float64   `json:"final_score"`
	Tier           Tier      `json:"tier"`
	ComputedAt     time.Time `json:"computed_at"`
}
