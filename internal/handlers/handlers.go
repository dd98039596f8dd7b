package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kvkstats/ranking-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// defaultBatchLimit caps POST /kingdoms/scores when Config.BatchLimit is unset
const defaultBatchLimit = 100

// SnapshotQueue exposes the snapshot worker pool to the readiness probe
type SnapshotQueue interface {
	QueueDepth() int
}

// Pinger is satisfied by *pgxpool.Pool and clickhouse driver.Conn
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	Snapshots  SnapshotQueue
	Postgres   Pinger
	ClickHouse Pinger
	Redis      RedisPinger
	Logger     *zap.Logger
	BatchLimit int
	// Services
	Ranking logic.RankingService
	History logic.ScoreHistoryService
}

type Handler struct {
	snapshots  SnapshotQueue
	pg         Pinger
	ch         Pinger
	redis      RedisPinger
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	batchLimit int
	ranking    logic.RankingService
	history    logic.ScoreHistoryService
}

func New(cfg Config) *Handler {
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = defaultBatchLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Handler{
		snapshots:  cfg.Snapshots,
		pg:         cfg.Postgres,
		ch:         cfg.ClickHouse,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		batchLimit: cfg.BatchLimit,
		ranking:    cfg.Ranking,
		history:    cfg.History,
	}
}
