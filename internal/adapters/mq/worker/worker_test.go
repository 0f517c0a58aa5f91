package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cmsperf/topreco/internal/adapters/mq/queue"
	"github.com/cmsperf/topreco/internal/adapters/mq/worker"
	"github.com/cmsperf/topreco/internal/domain/model"
	"github.com/cmsperf/topreco/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type fakeIngester struct {
	failPath string
}

func (f *fakeIngester) ReadFile(_ context.Context, job model.FileJob) (model.Batch, error) {
	if job.GenPath == f.failPath {
		return model.Batch{}, errors.New("corrupt file")
	}
	return model.Batch{
		Era:     job.Era,
		Channel: job.Channel,
		File:    job.GenPath,
		Gen:     make([]model.TopPair, 3),
		Weights: []float64{1, 1, 1},
	}, nil
}

type collectSink struct {
	mu      sync.Mutex
	batches []model.Batch
}

func (s *collectSink) Accept(_ context.Context, b model.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, b)
	return nil
}

func (s *collectSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool draining a queue of file jobs", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		sink := &collectSink{}
		pool := worker.NewPool(4, q, &fakeIngester{}, sink)

		Convey("When all jobs are enqueued and the queue is closed", func() {
			for _, path := range []string{"a.root", "b.root", "c.root"} {
				So(q.Enqueue(ctx, model.FileJob{Era: "2018", Channel: "emu", GenPath: path}), ShouldBeTrue)
			}
			pool.Start(ctx)
			So(q.Close(), ShouldBeNil)

			Convey("Then Wait returns once every batch reached the sink", func() {
				So(pool.Wait(ctx), ShouldBeNil)
				So(sink.len(), ShouldEqual, 3)
			})
		})

		Convey("When one file fails to ingest", func() {
			pool = worker.NewPool(2, q, &fakeIngester{failPath: "bad.root"}, sink)
			for _, path := range []string{"good.root", "bad.root"} {
				So(q.Enqueue(ctx, model.FileJob{GenPath: path}), ShouldBeTrue)
			}
			pool.Start(ctx)
			So(q.Close(), ShouldBeNil)

			Convey("Then the failure is skipped and the rest still arrives", func() {
				So(pool.Wait(ctx), ShouldBeNil)
				So(sink.len(), ShouldEqual, 1)
				So(sink.batches[0].File, ShouldEqual, "good.root")
			})
		})

		Convey("When Wait is cancelled before the queue closes", func() {
			pool.Start(ctx)
			waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			Convey("Then Wait returns the context error", func() {
				So(pool.Wait(waitCtx), ShouldNotBeNil)
				So(pool.Shutdown(ctx), ShouldBeNil)
			})
		})
	})
}
