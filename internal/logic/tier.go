package logic

import "github.com/kvkstats/ranking-api/internal/models"

// ClassifyTier maps a final score onto a tier. Lower edges are inclusive.
func ClassifyTier(score float64) models.Tier {
	switch {
	case score >= TierSThreshold:
		return models.TierS
	case score >= TierAThreshold:
		return models.TierA
	case score >= TierBThreshold:
		return models.TierB
	case score >= TierCThreshold:
		return models.TierC
	default:
		return models.TierD
	}
}

// TierRank orders tiers from D (0) to S (4); unknown tiers rank -1.
func TierRank(t models.Tier) int {
	switch t {
	case models.TierS:
		return 4
	case models.TierA:
		return 3
	case models.TierB:
		return 2
	case models.TierC:
		return 1
	case models.TierD:
		return 0
	default:
		return -1
	}
}

// isEliteTier reports whether t is one of the two top bands
func isEliteTier(t models.Tier) bool {
	return TierRank(t) >= TierRank(models.TierA)
}
