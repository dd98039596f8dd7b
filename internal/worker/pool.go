// Package worker persists score snapshots asynchronously.
// Scoring requests hand snapshots to the pool and return immediately; the
// pool batches them into ClickHouse in the background:
// - Load shedding instead of backpressure when the queue is full
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/kvkstats/ranking-api/internal/models"
)

// Prometheus metrics
var (
	snapshotsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_snapshots_enqueued_total",
		Help: "Total number of score snapshots accepted by the pool",
	})

	snapshotsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_snapshots_processed_total",
		Help: "Total number of score snapshots written to ClickHouse",
	})

	snapshotsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_snapshots_failed_total",
		Help: "Total number of score snapshots that failed to persist",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kvk_snapshot_queue_depth",
		Help: "Current depth of the snapshot queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kvk_snapshot_batch_insert_duration_seconds",
		Help:    "Duration of snapshot batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	snapshotsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kvk_snapshots_load_shed_total",
		Help: "Total number of score snapshots dropped due to load shedding",
	})
)

const insertSnapshots = `
	INSERT INTO kvk_stats.score_snapshots (
		id, kingdom_id, formula_version, fingerprint,
		total_matches, base_score, final_score, tier, computed_at
	)
`

// SnapshotSchema creates the ClickHouse table the pool writes to
const SnapshotSchema = `
	CREATE TABLE IF NOT EXISTS kvk_stats.score_snapshots (
		id              UUID,
		kingdom_id      Int32,
		formula_version LowCardinality(String),
		fingerprint     String,
		total_matches   Int32,
		base_score      Float64,
		final_score     Float64,
		tier            LowCardinality(String),
		computed_at     DateTime64(3, 'UTC')
	)
	ENGINE = MergeTree
	ORDER BY (kingdom_id, computed_at)
`

// Job represents a unit of work for the worker pool
type Job struct {
	Snapshot *models.ScoreSnapshot
	Received time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	InsertTimeout time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages a pool of workers that persist score snapshots
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.InsertTimeout <= 0 {
		cfg.InsertTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool. Snapshots already queued are
// flushed before Stop returns; later Record calls are refused.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.logger.Info("Stopping worker pool...")
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Worker pool stopped")
}

// Record queues a snapshot for persistence. It never blocks: when the queue
// is full or the pool is stopped the snapshot is dropped and false returned.
func (p *Pool) Record(s *models.ScoreSnapshot) bool {
	if s == nil {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}

	select {
	case p.jobQueue <- Job{Snapshot: s, Received: time.Now()}:
		snapshotsEnqueued.Inc()
		return true
	default:
		snapshotsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker drains the queue in batches. It only exits once the queue is closed
// and empty, so Stop never loses queued snapshots.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if written, err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
		} else {
			p.logger.Debugw("Batch processed", "worker", id, "batchSize", len(batch), "written", written, "duration", time.Since(start))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes one batch of snapshots to ClickHouse and returns how
// many rows were written. Every snapshot in the batch ends up counted exactly
// once, as processed or as failed.
func (p *Pool) processBatch(batch []Job) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.config.InsertTimeout)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertSnapshots)
	if err != nil {
		snapshotsFailed.Add(float64(len(batch)))
		return 0, err
	}

	appended := 0
	for _, job := range batch {
		s := job.Snapshot
		computedAt := s.ComputedAt
		if computedAt.IsZero() {
			computedAt = job.Received
		}

		err := chBatch.Append(
			parseOrGenerateUUID(s.ID, s.Fingerprint),
			int32(s.KingdomID),
			s.FormulaVersion,
			s.Fingerprint,
			int32(s.TotalMatches),
			s.BaseScore,
			s.FinalScore,
			string(s.Tier),
			computedAt.UTC(),
		)
		if err != nil {
			p.logger.Warnw("Failed to append snapshot to batch", "error", err, "kingdom", s.KingdomID)
			snapshotsFailed.Inc()
			continue
		}
		appended++
	}

	if appended == 0 {
		_ = chBatch.Abort()
		return 0, nil
	}
	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		snapshotsFailed.Add(float64(appended))
		return 0, err
	}
	snapshotsProcessed.Add(float64(appended))
	return appended, nil
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// parseOrGenerateUUID keeps a valid snapshot id and otherwise derives a
// deterministic one, so a retried snapshot maps to the same row id.
func parseOrGenerateUUID(id, fallback string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(id+"|"+fallback))
}
