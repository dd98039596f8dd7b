package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kvkstats/ranking-api/internal/models"
)

// Prometheus metrics
var (
	scoresComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_scores_computed_total",
		Help: "Total number of score breakdowns computed",
	})

	scoreCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_score_cache_hits_total",
		Help: "Total number of score breakdowns served from cache",
	})

	simulationsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_simulations_total",
		Help: "Total number of projections simulated",
	})

	snapshotsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_snapshots_dropped_total",
		Help: "Total number of score snapshots the recorder refused",
	})
)

const defaultBatchConcurrency = 8

type rankingService struct {
	store       KingdomStore
	cache       ScoreCache
	recorder    SnapshotRecorder
	logger      *zap.SugaredLogger
	concurrency int
}

// NewRankingService wires the scoring engine to its collaborators.
// cache and recorder may be nil.
func NewRankingService(store KingdomStore, cache ScoreCache, recorder SnapshotRecorder, logger *zap.Logger, concurrency int) RankingService {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &rankingService{
		store:       store,
		cache:       cache,
		recorder:    recorder,
		logger:      logger.Sugar(),
		concurrency: concurrency,
	}
}

func (s *rankingService) ScoreStats(ctx context.Context, stats models.KingdomStats) (*models.KingdomScore, error) {
	if err := ValidateStats(stats); err != nil {
		return nil, err
	}

	fp := Fingerprint(stats)
	score := &models.KingdomScore{
		Fingerprint: fp,
		Stats:       stats,
		ComputedAt:  time.Now().UTC(),
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, fp)
		if err != nil {
			s.logger.Warnw("Score cache read failed", "error", err, "fingerprint", fp)
		}
		if ok && cached.FormulaVersion == FormulaVersion {
			scoreCacheHits.Inc()
			score.Breakdown = *cached
			score.Cached = true
			return score, nil
		}
	}

	score.Breakdown = computeScore(stats)
	scoresComputed.Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, fp, &score.Breakdown); err != nil {
			s.logger.Warnw("Score cache write failed", "error", err, "fingerprint", fp)
		}
	}

	return score, nil
}

func (s *rankingService) ScoreKingdom(ctx context.Context, kingdomID int) (*models.KingdomScore, error) {
	stats, err := s.loadStats(ctx, kingdomID)
	if err != nil {
		return nil, err
	}

	score, err := s.ScoreStats(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("kingdom %d: %w", kingdomID, err)
	}
	score.KingdomID = kingdomID

	s.record(score)
	return score, nil
}

// ScoreKingdoms scores every kingdom independently and in parallel.
// Results keep the order of kingdomIDs; the first failure cancels the rest.
func (s *rankingService) ScoreKingdoms(ctx context.Context, kingdomIDs []int) ([]models.KingdomScore, error) {
	results := make([]models.KingdomScore, len(kingdomIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, id := range kingdomIDs {
		i, id := i, id
		g.Go(func() error {
			score, err := s.ScoreKingdom(gCtx, id)
			if err != nil {
				return err
			}
			results[i] = *score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Errorw("Batch scoring failed", "error", err, "kingdoms", len(kingdomIDs))
		return nil, err
	}
	return results, nil
}

func (s *rankingService) SimulateKingdom(ctx context.Context, kingdomID int, events []models.SimulatedEvent) (*models.SimulationResult, error) {
	stats, err := s.loadStats(ctx, kingdomID)
	if err != nil {
		return nil, err
	}

	result, err := Simulate(stats, events)
	if err != nil {
		return nil, fmt.Errorf("kingdom %d: %w", kingdomID, err)
	}
	simulationsRun.Inc()

	s.logger.Infow("Projection simulated",
		"kingdom", kingdomID,
		"events", len(events),
		"delta", result.ScoreDelta,
		"from", result.CurrentTier,
		"to", result.ProjectedTier,
	)
	return &result, nil
}

func (s *rankingService) loadStats(ctx context.Context, kingdomID int) (models.KingdomStats, error) {
	profile, err := s.store.GetProfile(ctx, kingdomID)
	if err != nil {
		return models.KingdomStats{}, err
	}
	stats, err := ExtractStats(*profile)
	if err != nil {
		return models.KingdomStats{}, fmt.Errorf("kingdom %d: %w", kingdomID, err)
	}
	return stats, nil
}

func (s *rankingService) record(score *models.KingdomScore) {
	if s.recorder == nil {
		return
	}
	ok := s.recorder.Record(&models.ScoreSnapshot{
		ID:             uuid.New().String(),
		KingdomID:      score.KingdomID,
		FormulaVersion: score.Breakdown.FormulaVersion,
		Fingerprint:    score.Fingerprint,
		TotalMatches:   score.Stats.TotalMatches,
		BaseScore:      score.Breakdown.BaseScore,
		FinalScore:     score.Breakdown.FinalScore,
		Tier:           score.Breakdown.Tier,
		ComputedAt:     score.ComputedAt,
	})
	if !ok {
		snapshotsDropped.Inc()
		s.logger.Debugw("Score snapshot dropped", "kingdom", score.KingdomID)
	}
}
