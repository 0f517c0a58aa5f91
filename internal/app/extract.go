package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmsperf/topreco/internal/adapters/mq/queue"
	"github.com/cmsperf/topreco/internal/adapters/mq/worker"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/logger"
	"github.com/cmsperf/topreco/pkg/metrics"
)

const enqueueRetryDelay = 10 * time.Millisecond

// Extract scans the configured datasets, ingests every selected file through
// the worker pool, and persists the accumulated per-era arrays.
func (s *Service) Extract(ctx context.Context) error {
	jobs, err := s.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scanning datasets: %w", err)
	}
	if len(jobs) == 0 {
		return ErrNoInputFiles
	}
	s.logger.Info(ctx, "extraction started",
		logger.String("run_id", s.runID),
		logger.Int("files", len(jobs)),
	)

	q := queue.NewInMemoryQueue(queue.WithCapacity(s.cfg.QueueSize))
	acc := newAccumulator()
	pool := worker.NewPool(s.cfg.WorkerCount, q, s.ingester, acc)
	pool.Start(ctx)

	for _, job := range jobs {
		if s.deduper.SeenAndRecord(ctx, job.Key()) {
			metrics.RecordFileDuplicate()
			s.logger.Warn(ctx, "duplicate file skipped", logger.String("file", job.GenPath))
			continue
		}
		if !s.enqueue(ctx, q, job) {
			s.deduper.Unrecord(ctx, job.Key())
			_ = q.Close()
			return fmt.Errorf("%w: %s", ErrEnqueue, job.GenPath)
		}
	}

	if err := q.Close(); err != nil {
		return fmt.Errorf("closing queue: %w", err)
	}
	if err := pool.Wait(ctx); err != nil {
		return fmt.Errorf("draining worker pool: %w", err)
	}

	written := 0
	for _, era := range acc.eras() {
		set := acc.set(era)
		// A file with zero mask-passing events is valid input; an era made
		// of only such files has nothing to persist.
		if set.Events() == 0 {
			s.logger.Warn(ctx, "era has no selected events; skipping",
				logger.String("era", era))
			continue
		}
		if err := s.store.WriteEra(ctx, set, s.runID); err != nil {
			return fmt.Errorf("persisting era %s: %w", era, err)
		}
		written++
	}
	if written == 0 {
		return ErrNoEvents
	}

	s.logger.Info(ctx, "extraction finished",
		logger.String("run_id", s.runID),
		logger.Int("eras", written),
	)
	return nil
}

// enqueue retries the non-blocking enqueue until the pool frees a slot or
// the context ends.
func (s *Service) enqueue(ctx context.Context, q queue.Queue, job model.FileJob) bool {
	for {
		if q.Enqueue(ctx, job) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(enqueueRetryDelay):
		}
	}
}

// accumulator collects worker batches into per-era sets.
type accumulator struct {
	mu   sync.Mutex
	sets map[string]*model.EraSet
}

func newAccumulator() *accumulator {
	return &accumulator{sets: make(map[string]*model.EraSet)}
}

// Accept implements worker.Sink.
func (a *accumulator) Accept(_ context.Context, b model.Batch) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	set, ok := a.sets[b.Era]
	if !ok {
		set = &model.EraSet{Era: b.Era}
		a.sets[b.Era] = set
	}
	set.Append(b)
	return nil
}

func (a *accumulator) eras() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.sets))
	for era := range a.sets {
		out = append(out, era)
	}
	sort.Strings(out)
	return out
}

func (a *accumulator) set(era string) *model.EraSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sets[era]
}
