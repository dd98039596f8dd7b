package logic

import (
	"math"

	"github.com/kvkstats/ranking-api/internal/models"
)

// ComputeScore runs the full formula:
//
//	final = clamp(base × domInv × form × streak × experience + history, MinScore, MaxScore)
//
// A kingdom with no matches scores exactly 0 in tier D.
func ComputeScore(s models.KingdomStats) (models.ScoreBreakdown, error) {
	if err := ValidateStats(s); err != nil {
		return models.ScoreBreakdown{}, err
	}
	return computeScore(s), nil
}

// computeScore assumes s is valid.
func computeScore(s models.KingdomStats) models.ScoreBreakdown {
	f := factorsOf(s)
	final := roundTo(f.score(), ScoreDecimals)

	return models.ScoreBreakdown{
		FormulaVersion:       FormulaVersion,
		BaseScore:            roundTo(f.base, ScoreDecimals),
		DomInvMultiplier:     roundTo(f.domInv, FactorDecimals),
		RecentFormMultiplier: roundTo(f.form, FactorDecimals),
		StreakMultiplier:     roundTo(f.streak, FactorDecimals),
		ExperienceFactor:     roundTo(f.experience, FactorDecimals),
		HistoryBonus:         roundTo(f.history, ScoreDecimals),
		RawScore:             roundTo(f.raw(), ScoreDecimals),
		FinalScore:           final,
		Tier:                 ClassifyTier(final),
	}
}

// factors holds the unrounded formula components
type factors struct {
	base, domInv, form, streak, experience, history float64
}

func factorsOf(s models.KingdomStats) factors {
	return factors{
		base:       BaseScore(s),
		domInv:     DomInvMultiplier(s),
		form:       RecentFormMultiplier(s.RecentOutcomes),
		streak:     StreakMultiplier(s.CurrentPrepStreak, s.CurrentBattleStreak),
		experience: ExperienceFactor(s.TotalMatches),
		history:    HistoryBonus(s.TotalMatches),
	}
}

func (f factors) product() float64 {
	return f.base * f.domInv * f.form * f.streak * f.experience
}

func (f factors) raw() float64 {
	return f.product() + f.history
}

// score is the final score before display rounding
func (f factors) score() float64 {
	return clamp(f.raw(), MinScore, MaxScore)
}

// AdjustedRate is the phase win rate smoothed toward 50% by the prior
func AdjustedRate(wins, total int) float64 {
	return (float64(wins) + PriorWins) / (float64(total) + PriorTotal)
}

// BaseScore combines both smoothed phase rates on a 0..10 scale
func BaseScore(s models.KingdomStats) float64 {
	prep := AdjustedRate(s.PrepWins, s.PrepWins+s.PrepLosses)
	battle := AdjustedRate(s.BattleWins, s.BattleWins+s.BattleLosses)
	return (prep*PrepWeight + battle*BattleWeight) * BaseScoreScale
}

// DomInvMultiplier rewards dominations and punishes invasions, per KvK played
func DomInvMultiplier(s models.KingdomStats) float64 {
	if s.TotalMatches == 0 {
		return 1.0
	}
	domRate := float64(s.Dominations) / float64(s.TotalMatches)
	invRate := float64(s.Invasions) / float64(s.TotalMatches)
	return clamp(1+domRate*DomInvWeight-invRate*DomInvWeight, DomInvMin, DomInvMax)
}

// RecentFormMultiplier weights the last outcomes, most recent heaviest.
// A neutral window (0.5 on average) maps to 1.0.
func RecentFormMultiplier(recent []models.Outcome) float64 {
	n := len(recent)
	if n > RecentWindow {
		n = RecentWindow
	}
	if n == 0 {
		return 1.0
	}

	var weighted, totalWeight float64
	for i := 0; i < n; i++ {
		weighted += RecentFormWeights[i] * outcomeValues[recent[i]]
		totalWeight += RecentFormWeights[i]
	}
	form := weighted / totalWeight

	return clamp(1+(form-0.5)*2*FormSwing, FormMin, FormMax)
}

// StreakMultiplier turns the current phase streaks into a bounded modifier.
// Win streaks earn more than loss streaks cost, Battle more than Preparation.
func StreakMultiplier(prepStreak, battleStreak int) float64 {
	mod := streakContribution(prepStreak, PrepStreakBonus, PrepStreakBonusCap, PrepStreakPenalty, PrepStreakPenaltyCap) +
		streakContribution(battleStreak, BattleStreakBonus, BattleStreakBonusCap, BattleStreakPenalty, BattleStreakPenaltyCap)
	return clamp(1+mod, StreakMin, StreakMax)
}

func streakContribution(streak int, bonus, bonusCap, penalty, penaltyCap float64) float64 {
	switch {
	case streak > 0:
		return math.Min(float64(streak)*bonus, bonusCap)
	case streak < 0:
		return -math.Min(float64(-streak)*penalty, penaltyCap)
	default:
		return 0
	}
}

// ExperienceFactor damps scores of under-sampled kingdoms; it never amplifies.
func ExperienceFactor(totalMatches int) float64 {
	switch {
	case totalMatches <= 0:
		return 0
	case totalMatches >= VeteranThreshold:
		return 1.0
	case totalMatches < len(experienceTable):
		return experienceTable[totalMatches]
	default:
		last := len(experienceTable) - 1
		return math.Min(experienceTable[last]+float64(totalMatches-last)*ExperienceRampStep, 1.0)
	}
}

// HistoryBonus rewards a long track record regardless of results
func HistoryBonus(totalMatches int) float64 {
	if totalMatches <= 0 {
		return 0
	}
	return math.Min(float64(totalMatches)*HistoryBonusPerMatch, HistoryBonusCap)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
