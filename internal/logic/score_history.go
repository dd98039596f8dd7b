package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/kvkstats/ranking-api/internal/models"
)

// ScoreHistoryService reads persisted score snapshots
type ScoreHistoryService interface {
	KingdomHistory(ctx context.Context, kingdomID int, limit int) ([]models.ScoreSnapshot, error)
	Leaderboard(ctx context.Context, q SnapshotQuery) ([]models.ScoreSnapshot, error)
}

type scoreHistoryService struct {
	ch driver.Conn
}

func NewScoreHistoryService(ch driver.Conn) ScoreHistoryService {
	return &scoreHistoryService{ch: ch}
}

// KingdomHistory returns the most recent snapshots of one kingdom, newest first
func (s *scoreHistoryService) KingdomHistory(ctx context.Context, kingdomID int, limit int) ([]models.ScoreSnapshot, error) {
	if kingdomID <= 0 {
		return nil, invalid("kingdom_id", "must be > 0, got %d", kingdomID)
	}
	return s.query(ctx, SnapshotQuery{KingdomID: kingdomID, OrderBy: "computed_at", Limit: limit})
}

// Leaderboard ranks kingdoms by their latest snapshot under the given formula.
// An empty formula version means the current one.
func (s *scoreHistoryService) Leaderboard(ctx context.Context, q SnapshotQuery) ([]models.ScoreSnapshot, error) {
	if q.FormulaVersion == "" {
		q.FormulaVersion = FormulaVersion
	}
	q.KingdomID = 0
	q.LatestOnly = true
	q.OrderBy = "final_score"
	return s.query(ctx, q)
}

func (s *scoreHistoryService) query(ctx context.Context, q SnapshotQuery) ([]models.ScoreSnapshot, error) {
	sql, args, err := BuildSnapshotQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.ch.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	defer rows.Close()

	out := make([]models.ScoreSnapshot, 0)
	for rows.Next() {
		var (
			snap                    models.ScoreSnapshot
			kingdomID, totalMatches int32
			tier                    string
			computedAt              time.Time
		)
		if err := rows.Scan(
			&snap.ID, &kingdomID, &snap.FormulaVersion, &snap.Fingerprint,
			&totalMatches, &snap.BaseScore, &snap.FinalScore, &tier, &computedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.KingdomID = int(kingdomID)
		snap.TotalMatches = int(totalMatches)
		snap.Tier = models.Tier(tier)
		snap.ComputedAt = computedAt.UTC()
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot row iteration failed: %w", err)
	}
	return out, nil
}
