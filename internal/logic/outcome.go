package logic

import (
	"strings"

	"go.uber.org/zap"

	"github.com/kvkstats/ranking-api/internal/models"
)

// ClassifyOutcome names a KvK by its two phase results
func ClassifyOutcome(prepWon, battleWon bool) models.Outcome {
	switch {
	case prepWon && battleWon:
		return models.OutcomeDomination
	case !prepWon && battleWon:
		return models.OutcomeComeback
	case prepWon && !battleWon:
		return models.OutcomeReversal
	default:
		return models.OutcomeInvasion
	}
}

// ParseOutcome is the strict parser used for API input.
func ParseOutcome(s string) (models.Outcome, error) {
	o := models.Outcome(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := outcomeValues[o]; !ok {
		return "", invalid("outcome", "unknown outcome %q", s)
	}
	return o, nil
}

// legacyOutcomeTags maps labels found in archived KvK sheets
var legacyOutcomeTags = map[string]models.Outcome{
	"domination": models.OutcomeDomination,
	"dominated":  models.OutcomeDomination,
	"dom":        models.OutcomeDomination,
	"perfect":    models.OutcomeDomination,
	"ww":         models.OutcomeDomination,
	"comeback":   models.OutcomeComeback,
	"lw":         models.OutcomeComeback,
	"reversal":   models.OutcomeReversal,
	"reverse":    models.OutcomeReversal,
	"wl":         models.OutcomeReversal,
	"invasion":   models.OutcomeInvasion,
	"invaded":    models.OutcomeInvasion,
	"ll":         models.OutcomeInvasion,
}

// NormalizeLegacyOutcome maps a historical outcome label onto an Outcome.
// Unrecognized labels fall back to Invasion with a warning so one bad row
// cannot stop a whole leaderboard from being ranked.
func NormalizeLegacyOutcome(tag string, logger *zap.SugaredLogger) models.Outcome {
	key := strings.ToLower(strings.TrimSpace(tag))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if o, ok := legacyOutcomeTags[key]; ok {
		return o
	}
	if logger != nil {
		logger.Warnw("Unknown legacy outcome tag, defaulting to invasion", "tag", tag)
	}
	return models.OutcomeInvasion
}

// parsePhaseResult reports whether r is a win. ok is false for byes and
// placeholders; err is set for values that are neither.
func parsePhaseResult(r models.PhaseResult) (won bool, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(string(r))) {
	case "win", "won", "w":
		return true, true, nil
	case "loss", "lost", "lose", "l":
		return false, true, nil
	case "", "-", "n/a", "na", "none", "null", "pending", "tbd", "bye":
		return false, false, nil
	default:
		return false, false, invalid("phase result", "unknown value %q", r)
	}
}
