package logic

import "github.com/kvkstats/ranking-api/internal/models"

// Scoring formula constants. Tier thresholds are calibrated against the clamp
// bands below, so any change to a weight or band must bump FormulaVersion.
const FormulaVersion = "2.1"

// Bayesian prior pulling phase win rates toward 50%
const (
	PriorWins  = 1.0
	PriorTotal = 2.0
)

// Base score: Battle counts more than Preparation
const (
	PrepWeight     = 0.40
	BattleWeight   = 0.60
	BaseScoreScale = 10.0
)

// Domination / invasion multiplier
const (
	DomInvWeight = 0.25
	DomInvMin    = 0.85
	DomInvMax    = 1.15
)

// Recent form multiplier
const (
	RecentWindow = 5
	FormSwing    = 0.15 // max deviation from neutral
	FormMin      = 1 - FormSwing
	FormMax      = 1 + FormSwing
)

// RecentFormWeights weight recentOutcomes[i]; strictly decreasing.
var RecentFormWeights = [RecentWindow]float64{1.0, 0.8, 0.6, 0.4, 0.2}

// outcomeValues is the ordinal value of each outcome, normalized to [0,1]
var outcomeValues = map[models.Outcome]float64{
	models.OutcomeDomination: 1.0,
	models.OutcomeComeback:   0.6,
	models.OutcomeReversal:   0.4,
	models.OutcomeInvasion:   0.0,
}

// Streak multiplier
const (
	PrepStreakBonus      = 0.02
	PrepStreakBonusCap   = 0.06
	BattleStreakBonus    = 0.03
	BattleStreakBonusCap = 0.09

	PrepStreakPenalty      = 0.01
	PrepStreakPenaltyCap   = 0.03
	BattleStreakPenalty    = 0.015
	BattleStreakPenaltyCap = 0.045

	StreakMin = 0.92
	StreakMax = 1.12
)

// Experience factor
const (
	VeteranThreshold   = 10
	ExperienceRampStep = 0.04 // per match between the table end and the veteran threshold
)

// experienceTable holds the credit for 0..4 matches
var experienceTable = []float64{0, 0.40, 0.55, 0.65, 0.75}

// History bonus
const (
	HistoryBonusPerMatch = 0.02
	HistoryBonusCap      = 0.5
)

// Output range. MaxScore stays above the reachable ceiling of
// 10 × DomInvMax × FormMax × StreakMax + HistoryBonusCap (about 15.31).
const (
	MinScore = 0.0
	MaxScore = 16.0
)

// Tier thresholds, inclusive lower edges
const (
	TierSThreshold = 9.0
	TierAThreshold = 7.0
	TierBThreshold = 5.0
	TierCThreshold = 3.0
)

// Display precision
const (
	ScoreDecimals  = 2
	FactorDecimals = 3
)
