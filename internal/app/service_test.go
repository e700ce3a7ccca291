package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	service "github.com/okian/gobu/internal/app"
	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/catalog/catalogtest"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fakeStore struct {
	ds  catalog.Dataset
	err error
}

func (f fakeStore) Load(context.Context) (catalog.Dataset, error) { return f.ds, f.err }

type recordingResponder struct {
	mu      sync.Mutex
	replies map[string]service.Reply
}

func (r *recordingResponder) Respond(_ context.Context, inv model.Invocation, reply service.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replies == nil {
		r.replies = map[string]service.Reply{}
	}
	r.replies[inv.ID] = reply
	return nil
}

func (r *recordingResponder) get(id string) (service.Reply, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reply, ok := r.replies[id]
	return reply, ok
}

// started returns a running service over the fixture catalog.
func started(opts ...service.Option) *service.Service {
	opts = append([]service.Option{
		service.WithStore(fakeStore{ds: catalogtest.Dataset()}),
		service.WithWorkerCount(2),
		service.WithQueueSize(16),
	}, opts...)
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service without a store", t, func() {
		svc := service.New()

		Convey("Then starting fails", func() {
			So(errors.Is(svc.Start(ctx), service.ErrNoStore), ShouldBeTrue)
		})

		Convey("And queries report it is not started", func() {
			_, err := svc.Pet(ctx, "rain core")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a store that fails", t, func() {
		boom := errors.New("boom")
		svc := service.New(service.WithStore(fakeStore{err: boom}))

		Convey("Then Start wraps the error", func() {
			err := svc.Start(ctx)
			So(errors.Is(err, boom), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a started service", t, func() {
		svc := started()
		defer func() { _ = svc.Stop(ctx) }()

		Convey("Then it reports its stats", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["workerCount"], ShouldEqual, 2)
			So(stats["catalog"].(catalog.Stats).Pets, ShouldEqual, 5)
		})

		Convey("And starting again is a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})

		Convey("When stopping", func() {
			So(svc.Stop(ctx), ShouldBeNil)

			Convey("Then invocations are refused but lookups still work", func() {
				So(svc.Enqueue(ctx, model.Invocation{Content: "help"}), ShouldBeFalse)
				p, err := svc.Pet(ctx, "fire cat")
				So(err, ShouldBeNil)
				So(p.InternalName, ShouldEqual, "Pet-FireCat")
			})

			Convey("And stopping again is a no-op", func() {
				So(svc.Stop(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Enqueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with a responder", t, func() {
		responder := &recordingResponder{}
		svc := started(service.WithResponder(responder))
		defer func() { _ = svc.Stop(ctx) }()

		Convey("When a command is enqueued", func() {
			ok := svc.Enqueue(ctx, model.Invocation{ID: "inv-1", Content: "hatch rain core, fire cat"})
			So(ok, ShouldBeTrue)

			Convey("Then the responder receives its reply", func() {
				var reply service.Reply
				deadline := time.Now().Add(2 * time.Second)
				for time.Now().Before(deadline) {
					if r, found := responder.get("inv-1"); found {
						reply = r
						break
					}
					time.Sleep(5 * time.Millisecond)
				}
				So(reply.Command, ShouldEqual, "hatch")
				So(reply.Pages, ShouldHaveLength, 1)
			})
		})

		Convey("When an unknown command is enqueued", func() {
			So(svc.Enqueue(ctx, model.Invocation{ID: "inv-2", Content: "dance"}), ShouldBeTrue)

			Convey("Then nothing is sent", func() {
				time.Sleep(50 * time.Millisecond)
				_, found := responder.get("inv-2")
				So(found, ShouldBeFalse)
			})
		})
	})
}
