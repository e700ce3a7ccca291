package cooldown_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/gobu/internal/domain/cooldown"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLimiter(t *testing.T) {
	Convey("Given a limiter with the default 1 per 10s window", t, func() {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		l := cooldown.New(cooldown.WithClock(clock.Now))
		ctx := context.Background()

		Convey("When a guild acts for the first time", func() {
			ok, wait := l.Allow(ctx, "guild-1")

			Convey("Then it is allowed", func() {
				So(ok, ShouldBeTrue)
				So(wait, ShouldEqual, 0)
				So(l.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same guild acts again inside the window", func() {
			l.Allow(ctx, "guild-1")
			clock.Advance(4 * time.Second)
			ok, wait := l.Allow(ctx, "guild-1")

			Convey("Then it is suppressed with the remaining wait", func() {
				So(ok, ShouldBeFalse)
				So(wait, ShouldEqual, 6*time.Second)
			})
		})

		Convey("When another guild acts inside the window", func() {
			l.Allow(ctx, "guild-1")
			ok, _ := l.Allow(ctx, "guild-2")

			Convey("Then guilds do not share a window", func() {
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the window has passed", func() {
			l.Allow(ctx, "guild-1")
			clock.Advance(10*time.Second + time.Millisecond)
			ok, _ := l.Allow(ctx, "guild-1")

			Convey("Then the guild is allowed again", func() {
				So(ok, ShouldBeTrue)
			})
		})
	})

	Convey("Given a limiter allowing 2 per window", t, func() {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		l := cooldown.New(cooldown.WithClock(clock.Now), cooldown.WithRate(2), cooldown.WithWindow(time.Minute))
		ctx := context.Background()

		Convey("Then the third action in the window is refused", func() {
			ok1, _ := l.Allow(ctx, "g")
			clock.Advance(time.Second)
			ok2, _ := l.Allow(ctx, "g")
			ok3, wait := l.Allow(ctx, "g")
			So(ok1, ShouldBeTrue)
			So(ok2, ShouldBeTrue)
			So(ok3, ShouldBeFalse)
			So(wait, ShouldEqual, 59*time.Second)
		})
	})

	Convey("Given a limiter bounded to 3 guilds", t, func() {
		l := cooldown.New(cooldown.WithMaxKeys(3))
		ctx := context.Background()

		Convey("When 5 guilds act", func() {
			for i := 0; i < 5; i++ {
				l.Allow(ctx, fmt.Sprintf("guild-%d", i))
			}

			Convey("Then only the most recent 3 are tracked", func() {
				So(l.Size(), ShouldEqual, 3)
				So(l.Evictions(), ShouldEqual, 2)
			})

			Convey("And an evicted guild starts with a fresh window", func() {
				ok, _ := l.Allow(ctx, "guild-0")
				So(ok, ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent mentions in one guild", t, func() {
		l := cooldown.New()
		ctx := context.Background()
		var allowed atomic.Int32
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := l.Allow(ctx, "busy"); ok {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one is allowed", func() {
			So(allowed.Load(), ShouldEqual, 1)
		})
	})
}
