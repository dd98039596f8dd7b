package logic

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/kvkstats/ranking-api/internal/models"
)

// Fingerprint is a content hash of stats under the current formula version.
// Equal stats always share a fingerprint, so it is safe as a cache key.
func Fingerprint(s models.KingdomStats) string {
	if s.RecentOutcomes == nil {
		s.RecentOutcomes = []models.Outcome{}
	}
	// Marshal of a flat struct of ints and strings cannot fail
	b, _ := json.Marshal(s)

	h := sha256.New()
	h.Write([]byte(FormulaVersion))
	h.Write([]byte{0})
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}
