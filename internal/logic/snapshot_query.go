package logic

import (
	"fmt"
	"time"

	"github.com/kvkstats/ranking-api/internal/models"
)

const (
	defaultSnapshotLimit = 50
	maxSnapshotLimit     = 500
)

// SnapshotQuery holds parameters for reading score snapshots back from ClickHouse
type SnapshotQuery struct {
	KingdomID      int       `json:"kingdom_id"`      // WHERE kingdom_id = ?
	FormulaVersion string    `json:"formula_version"` // WHERE formula_version = ?
	Tier           string    `json:"tier"`            // WHERE tier = ?
	Since          time.Time `json:"since"`
	Until          time.Time `json:"until"`
	LatestOnly     bool      `json:"latest_only"` // newest snapshot per kingdom
	OrderBy        string    `json:"order_by"`    // computed_at, final_score, total_matches
	Limit          int       `json:"limit"`
}

// allowedSnapshotOrder maps safe API values to SQL sort clauses
var allowedSnapshotOrder = map[string]string{
	"":              "computed_at DESC",
	"computed_at":   "computed_at DESC",
	"final_score":   "final_score DESC, kingdom_id ASC",
	"total_matches": "total_matches DESC, kingdom_id ASC",
}

const snapshotColumns = `toString(id) AS id, kingdom_id, formula_version, fingerprint,
	total_matches, base_score, final_score, tier, computed_at`

// BuildSnapshotQuery constructs a parameterized ClickHouse query over
// kvk_stats.score_snapshots. User input only ever reaches the args slice.
func BuildSnapshotQuery(q SnapshotQuery) (string, []interface{}, error) {
	order, ok := allowedSnapshotOrder[q.OrderBy]
	if !ok {
		return "", nil, invalid("order_by", "unsupported value %q", q.OrderBy)
	}
	if q.KingdomID < 0 {
		return "", nil, invalid("kingdom_id", "must be >= 0, got %d", q.KingdomID)
	}
	if q.Tier != "" && TierRank(models.Tier(q.Tier)) < 0 {
		return "", nil, invalid("tier", "unknown tier %q", q.Tier)
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Until.Before(q.Since) {
		return "", nil, invalid("until", "must not be before since")
	}

	query := "SELECT " + snapshotColumns + " FROM kvk_stats.score_snapshots WHERE 1=1"
	var args []interface{}

	if q.KingdomID > 0 {
		query += " AND kingdom_id = ?"
		args = append(args, int32(q.KingdomID))
	}
	if q.FormulaVersion != "" {
		query += " AND formula_version = ?"
		args = append(args, q.FormulaVersion)
	}
	if !q.Since.IsZero() {
		query += " AND computed_at >= ?"
		args = append(args, q.Since)
	}
	if !q.Until.IsZero() {
		query += " AND computed_at <= ?"
		args = append(args, q.Until)
	}

	if q.LatestOnly {
		// Tier is filtered after picking the newest row, otherwise a kingdom
		// that has since dropped out of a tier would still be listed in it.
		query += " ORDER BY computed_at DESC LIMIT 1 BY kingdom_id"
		query = "SELECT * FROM (" + query + ") WHERE 1=1"
	}
	if q.Tier != "" {
		query += " AND tier = ?"
		args = append(args, q.Tier)
	}

	query += " ORDER BY " + order

	limit := q.Limit
	switch {
	case limit <= 0:
		limit = defaultSnapshotLimit
	case limit > maxSnapshotLimit:
		limit = maxSnapshotLimit
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	return query, args, nil
}
