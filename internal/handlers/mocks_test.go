package handlers

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/kvkstats/ranking-api/internal/logic"
	"github.com/kvkstats/ranking-api/internal/models"
)

// MockRankingService
type MockRankingService struct {
	ScoreStatsFunc      func(ctx context.Context, stats models.KingdomStats) (*models.KingdomScore, error)
	ScoreKingdomFunc    func(ctx context.Context, kingdomID int) (*models.KingdomScore, error)
	ScoreKingdomsFunc   func(ctx context.Context, kingdomIDs []int) ([]models.KingdomScore, error)
	SimulateKingdomFunc func(ctx context.Context, kingdomID int, events []models.SimulatedEvent) (*models.SimulationResult, error)
}

func (m *MockRankingService) ScoreStats(ctx context.Context, stats models.KingdomStats) (*models.KingdomScore, error) {
	if m.ScoreStatsFunc != nil {
		return m.ScoreStatsFunc(ctx, stats)
	}
	b, err := logic.ComputeScore(stats)
	if err != nil {
		return nil, err
	}
	return &models.KingdomScore{Stats: stats, Breakdown: b}, nil
}

func (m *MockRankingService) ScoreKingdom(ctx context.Context, kingdomID int) (*models.KingdomScore, error) {
	if m.ScoreKingdomFunc != nil {
		return m.ScoreKingdomFunc(ctx, kingdomID)
	}
	return &models.KingdomScore{KingdomID: kingdomID}, nil
}

func (m *MockRankingService) ScoreKingdoms(ctx context.Context, kingdomIDs []int) ([]models.KingdomScore, error) {
	if m.ScoreKingdomsFunc != nil {
		return m.ScoreKingdomsFunc(ctx, kingdomIDs)
	}
	out := make([]models.KingdomScore, len(kingdomIDs))
	for i, id := range kingdomIDs {
		out[i].KingdomID = id
	}
	return out, nil
}

func (m *MockRankingService) SimulateKingdom(ctx context.Context, kingdomID int, events []models.SimulatedEvent) (*models.SimulationResult, error) {
	if m.SimulateKingdomFunc != nil {
		return m.SimulateKingdomFunc(ctx, kingdomID, events)
	}
	return &models.SimulationResult{}, nil
}

// MockHistoryService
type MockHistoryService struct {
	KingdomHistoryFunc func(ctx context.Context, kingdomID int, limit int) ([]models.ScoreSnapshot, error)
	LeaderboardFunc    func(ctx context.Context, q logic.SnapshotQuery) ([]models.ScoreSnapshot, error)
}

func (m *MockHistoryService) KingdomHistory(ctx context.Context, kingdomID int, limit int) ([]models.ScoreSnapshot, error) {
	if m.KingdomHistoryFunc != nil {
		return m.KingdomHistoryFunc(ctx, kingdomID, limit)
	}
	return []models.ScoreSnapshot{}, nil
}

func (m *MockHistoryService) Leaderboard(ctx context.Context, q logic.SnapshotQuery) ([]models.ScoreSnapshot, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, q)
	}
	return []models.ScoreSnapshot{}, nil
}

// MockPinger stands in for Postgres and ClickHouse
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

type MockRedisPinger struct {
	Err error
}

func (m *MockRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	if m.Err != nil {
		return redis.NewStatusResult("", m.Err)
	}
	return redis.NewStatusResult("PONG", nil)
}

type MockSnapshotQueue struct {
	Depth int
}

func (m *MockSnapshotQueue) QueueDepth() int { return m.Depth }

var errBackend = errors.New("backend exploded")
