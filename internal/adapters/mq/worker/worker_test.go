package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/gobu/internal/adapters/mq/queue"
	worker "github.com/okian/gobu/internal/adapters/mq/worker"
	model "github.com/okian/gobu/internal/domain/model"
	logging "github.com/okian/gobu/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockQueue struct {
	ch   chan queue.Invocation
	once sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{ch: make(chan queue.Invocation, 10)}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Invocation { return mq.ch }

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.ch) })
	return nil
}

func (mq *mockQueue) add(inv queue.Invocation) { //nolint:gocritic // hugeParam: passed by value for channel semantics
	mq.ch <- inv
}

// recorder is a Handler that remembers what it saw and can be told to fail.
type recorder struct {
	mu     sync.Mutex
	seen   []string
	errFor map[string]error
	panics map[string]bool
}

func newRecorder() *recorder {
	return &recorder{errFor: map[string]error{}, panics: map[string]bool{}}
}

func (r *recorder) Handle(ctx context.Context, inv queue.Invocation) error { //nolint:gocritic // hugeParam
	r.mu.Lock()
	r.seen = append(r.seen, inv.ID)
	err, boom := r.errFor[inv.ID], r.panics[inv.ID]
	r.mu.Unlock()
	if boom {
		panic("boom")
	}
	return err
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		h := newRecorder()

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(q, h, worker.WithName("test-worker"), worker.WithLogger(logging.Named("custom")))

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(q, h)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)

			convey.Convey("And an invocation arrives", func() {
				q.add(model.Invocation{ID: "inv-1", Content: "hatch a, b"})

				convey.Convey("Then the handler sees it", func() {
					convey.So(waitFor(func() bool { return h.count() == 1 }), convey.ShouldBeTrue)
				})
			})

			convey.Convey("And the handler fails or panics", func() {
				h.errFor["inv-2"] = errors.New("send failed")
				h.panics["inv-3"] = true
				q.add(model.Invocation{ID: "inv-2"})
				q.add(model.Invocation{ID: "inv-3"})
				q.add(model.Invocation{ID: "inv-4"})

				convey.Convey("Then the worker keeps going", func() {
					convey.So(waitFor(func() bool { return h.count() == 3 }), convey.ShouldBeTrue)
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()

				convey.So(w.Shutdown(shutdownCtx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the queue closes", func() {
			w := worker.NewInMemoryWorker(q, h)
			stopped := make(chan struct{})
			go func() {
				w.Run(context.Background())
				close(stopped)
			}()
			_ = q.Close()

			convey.Convey("Then Run returns", func() {
				select {
				case <-stopped:
				case <-time.After(time.Second):
					convey.So("worker still running", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestHandlerFunc(t *testing.T) {
	convey.Convey("Given a HandlerFunc", t, func() {
		var got string
		h := worker.HandlerFunc(func(ctx context.Context, inv queue.Invocation) error {
			got = inv.ID
			return nil
		})

		convey.Convey("Then it satisfies Handler", func() {
			convey.So(h.Handle(context.Background(), model.Invocation{ID: "x"}), convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, "x")
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of 3 workers", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		h := newRecorder()
		pool := worker.NewPool(3, q, h)
		convey.So(pool.Size(), convey.ShouldEqual, 3)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)

		convey.Convey("When invocations are queued and the pool shuts down", func() {
			for _, id := range []string{"a", "b", "c", "d"} {
				q.add(model.Invocation{ID: id})
			}
			err := pool.Shutdown(context.Background())

			convey.Convey("Then everything buffered was handled", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(h.count(), convey.ShouldEqual, 4)
				convey.So(pool.Processed(), convey.ShouldEqual, 4)
			})
		})
	})

	convey.Convey("Given a non-positive worker count", t, func() {
		_ = logging.Init()
		pool := worker.NewPool(0, newMockQueue(), newRecorder())

		convey.Convey("Then the pool sizes itself from the CPU count", func() {
			convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})
}
