package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/kvkstats/ranking-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CacheClient defines the subset of the Redis client used by the score cache
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// KingdomStore loads raw kingdom profiles
type KingdomStore interface {
	GetProfile(ctx context.Context, kingdomID int) (*models.KingdomProfile, error)
}

// ScoreCache memoizes breakdowns by stats fingerprint
type ScoreCache interface {
	Get(ctx context.Context, fingerprint string) (*models.ScoreBreakdown, bool, error)
	Set(ctx context.Context, fingerprint string, b *models.ScoreBreakdown) error
}

// SnapshotRecorder accepts score snapshots for asynchronous persistence.
// Record must not block; it returns false when the snapshot was dropped.
type SnapshotRecorder interface {
	Record(s *models.ScoreSnapshot) bool
}

// RankingService scores kingdoms and projects hypothetical results
type RankingService interface {
	ScoreStats(ctx context.Context, stats models.KingdomStats) (*models.KingdomScore, error)
	ScoreKingdom(ctx context.Context, kingdomID int) (*models.KingdomScore, error)
	ScoreKingdoms(ctx context.Context, kingdomIDs []int) ([]models.KingdomScore, error)
	SimulateKingdom(ctx context.Context, kingdomID int, events []models.SimulatedEvent) (*models.SimulationResult, error)
}
