package ratelimit_test

import (
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pokedex/internal/ratelimit"
	"github.com/okian/pokedex/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestAllow(t *testing.T) {
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	Convey("Given a limiter of 3 requests per second", t, func() {
		l := ratelimit.New(
			ratelimit.WithWindow(time.Second),
			ratelimit.WithMax(3),
		)

		Convey("When a client stays under the limit", func() {
			var last ratelimit.Decision
			for i := 0; i < 3; i++ {
				last = l.Allow("alice", base.Add(time.Duration(i)*100*time.Millisecond))
			}

			Convey("Then every request should be admitted", func() {
				So(last.Allowed, ShouldBeTrue)
				So(last.Limit, ShouldEqual, 3)
				So(last.Remaining, ShouldEqual, 0)
			})
		})

		Convey("When a client exceeds the limit inside one window", func() {
			for i := 0; i < 3; i++ {
				l.Allow("alice", base)
			}
			d := l.Allow("alice", base.Add(100*time.Millisecond))

			Convey("Then the fourth request should be denied", func() {
				So(d.Allowed, ShouldBeFalse)
				So(d.Remaining, ShouldEqual, 0)
				So(d.RetryAfter, ShouldEqual, 1)
			})

			Convey("Then the denial should not consume budget", func() {
				So(len(l.Window("alice")), ShouldEqual, 3)
			})
		})

		Convey("When the window slides past earlier requests", func() {
			for i := 0; i < 3; i++ {
				l.Allow("alice", base)
			}
			d := l.Allow("alice", base.Add(1100*time.Millisecond))

			Convey("Then the client should be admitted again", func() {
				So(d.Allowed, ShouldBeTrue)
				So(d.Remaining, ShouldEqual, 2)
			})

			Convey("Then only the in-window timestamp should remain", func() {
				ts := l.Window("alice")
				So(len(ts), ShouldEqual, 1)
				So(ts[0], ShouldEqual, base.Add(1100*time.Millisecond))
			})
		})

		Convey("When two clients interleave", func() {
			for i := 0; i < 3; i++ {
				l.Allow("alice", base)
			}
			d := l.Allow("bob", base)

			Convey("Then each client should have an independent budget", func() {
				So(d.Allowed, ShouldBeTrue)
				So(d.Remaining, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a fractional retry window", t, func() {
		l := ratelimit.New(
			ratelimit.WithWindow(1500*time.Millisecond),
			ratelimit.WithMax(1),
		)
		l.Allow("alice", base)
		d := l.Allow("alice", base)

		Convey("Then the retry hint should round up to whole seconds", func() {
			So(d.Allowed, ShouldBeFalse)
			So(d.RetryAfter, ShouldEqual, 2)
		})
	})
}

func TestSweep(t *testing.T) {
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	Convey("Given tracked clients with stale records", t, func() {
		l := ratelimit.New(
			ratelimit.WithWindow(time.Second),
			ratelimit.WithMax(10),
		)
		l.Allow("stale", base)
		l.Allow("fresh", base.Add(2*time.Second))

		Convey("When sweeping after the window has passed the stale client", func() {
			l.Sweep(base.Add(2 * time.Second))

			Convey("Then the empty record should be dropped", func() {
				So(l.Clients(), ShouldEqual, 1)
				So(l.Window("stale"), ShouldBeEmpty)
				So(len(l.Window("fresh")), ShouldEqual, 1)
			})
		})
	})

	Convey("Given more clients than the tracking cap", t, func() {
		l := ratelimit.New(
			ratelimit.WithWindow(time.Hour),
			ratelimit.WithMax(10),
			ratelimit.WithMaxClients(3),
		)
		for i := 0; i < 5; i++ {
			l.Allow(fmt.Sprintf("client-%d", i), base.Add(time.Duration(i)*time.Minute))
		}

		Convey("When sweeping", func() {
			l.Sweep(base.Add(10 * time.Minute))

			Convey("Then the least recently active clients should be evicted", func() {
				So(l.Clients(), ShouldEqual, 3)
				So(l.Window("client-0"), ShouldBeEmpty)
				So(l.Window("client-1"), ShouldBeEmpty)
				So(len(l.Window("client-4")), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a disabled client cap", t, func() {
		l := ratelimit.New(
			ratelimit.WithWindow(time.Hour),
			ratelimit.WithMaxClients(0),
		)
		for i := 0; i < 5; i++ {
			l.Allow(fmt.Sprintf("client-%d", i), base)
		}

		Convey("When sweeping", func() {
			l.Sweep(base)

			Convey("Then no client should be evicted", func() {
				So(l.Clients(), ShouldEqual, 5)
			})
		})
	})
}
