package timeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-timeline/internal/adapter"
	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/logger"
	"github.com/feral-file/ff-timeline/internal/results"
)

// RunnerConfig holds configuration for the entity runner
type RunnerConfig struct {
	WorkerPoolSize int // Concurrent entity analyses
	QueueSize      int // Pending entities before Submit blocks
}

// Summary reports what a run evaluated
type Summary struct {
	RunID     string
	Snapshots int
	Residents int
	Towns     int
	Failed    int
	Duration  time.Duration
}

// Runner evaluates every entity of a snapshot batch and hands the bundles to a sink
type Runner interface {
	// Run analyzes the entity universe of snapshots.
	// Entity failures do not stop other entities; they are joined into the returned error.
	Run(ctx context.Context, snapshots []domain.Snapshot) (Summary, error)
}

type runner struct {
	config *RunnerConfig
	sink   results.Sink
	clock  adapter.Clock
}

// NewRunner creates a new entity runner
func NewRunner(config *RunnerConfig, sink results.Sink, clock adapter.Clock) Runner {
	return &runner{
		config: config,
		sink:   sink,
		clock:  clock,
	}
}

// Run implements Runner
func (r *runner) Run(ctx context.Context, snapshots []domain.Snapshot) (Summary, error) {
	if len(snapshots) == 0 {
		return Summary{}, domain.ErrNoSnapshots
	}

	start := r.clock.Now()
	runID := ulid.MustNewDefault(start).String()
	ctx = domain.WithRunID(ctx, runID)

	universe := EntityUniverse(snapshots)
	summary := Summary{
		RunID:     runID,
		Snapshots: len(snapshots),
		Residents: len(universe.ResidentIDs),
		Towns:     len(universe.TownNames),
	}

	logger.InfoCtx(ctx, "Starting timeline run",
		zap.Int("snapshots", summary.Snapshots),
		zap.Int("residents", summary.Residents),
		zap.Int("towns", summary.Towns),
		zap.Int("worker_pool_size", r.config.WorkerPoolSize),
	)

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	pool := pond.NewPool(
		r.config.WorkerPoolSize,
		pond.WithQueueSize(r.config.QueueSize),
		pond.WithContext(ctx),
	)

	var (
		mu      sync.Mutex
		errs    []error
		failed  atomic.Int32
		written atomic.Int32
	)
	fail := func(err error) {
		failed.Add(1)
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
		logger.ErrorCtx(ctx, err)
	}

	for _, id := range universe.ResidentIDs {
		pool.Submit(func() {
			bundle := ResidentTimeline(snapshots, id)
			if err := r.sink.Put(ctx, id, bundle); err != nil {
				fail(fmt.Errorf("failed to store resident %s: %w", id, err))
				return
			}
			written.Add(1)
			logger.DebugCtx(ctx, "Stored resident timeline", zap.String("resident_id", id))
		})
	}

	for _, name := range universe.TownNames {
		pool.Submit(func() {
			bundle, err := TownTimeline(snapshots, name)
			if err != nil {
				fail(fmt.Errorf("failed to evaluate town %s: %w", name, err))
				return
			}
			if err := r.sink.Put(ctx, name, bundle); err != nil {
				fail(fmt.Errorf("failed to store town %s: %w", name, err))
				return
			}
			written.Add(1)
			logger.DebugCtx(ctx, "Stored town timeline", zap.String("town", name))
		})
	}

	pool.StopAndWait()

	summary.Failed = int(failed.Load())
	summary.Duration = r.clock.Since(start)
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	logger.InfoCtx(ctx, "Finished timeline run",
		zap.Int32("written", written.Load()),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration),
	)

	return summary, errors.Join(errs...)
}
