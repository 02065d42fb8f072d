// Package ratelimit implements a sliding-window request governor with
// periodic eviction of stale client records.
package ratelimit

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// Default limiter configuration constants.
const (
	defaultWindow        = 15 * time.Minute
	defaultMax           = 100
	defaultMaxClients    = 500
	defaultSweepInterval = time.Minute
)

// Limiter tracks exact request timestamps per client within a trailing
// window. The map is the one mutable shared structure in the service and is
// mutex-serialized; everything else served is immutable.
type Limiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time

	window        time.Duration
	max           int
	maxClients    int
	sweepInterval time.Duration
	log           logger.Logger
}

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Reset is when a full window's budget is available again.
	Reset time.Time
	// RetryAfter is the retry hint in seconds, meaningful when denied.
	RetryAfter int
}

// Option applies a configuration option to the Limiter.
type Option func(*Limiter)

// WithWindow sets the sliding window length.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithMax sets the number of requests admitted per client per window.
func WithMax(max int) Option {
	return func(l *Limiter) {
		if max > 0 {
			l.max = max
		}
	}
}

// WithMaxClients caps the number of distinct tracked clients. Zero disables
// the cap.
func WithMaxClients(n int) Option {
	return func(l *Limiter) {
		if n >= 0 {
			l.maxClients = n
		}
	}
}

// WithSweepInterval sets the background prune interval.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.sweepInterval = d
		}
	}
}

// WithLogger sets a custom logger for the limiter.
func WithLogger(log logger.Logger) Option {
	return func(l *Limiter) {
		if log != nil {
			l.log = log
		}
	}
}

// New constructs a Limiter with default configuration.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		clients:       make(map[string][]time.Time),
		window:        defaultWindow,
		max:           defaultMax,
		maxClients:    defaultMaxClients,
		sweepInterval: defaultSweepInterval,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.log == nil {
		l.log = logger.Get().Named("ratelimit")
	}
	return l
}

// Allow decides admission for one request. Timestamps older than the window
// are discarded first; the request is admitted and recorded if the remaining
// count is below the maximum. Taking now as a parameter keeps the limiter
// deterministic under test.
func (l *Limiter) Allow(clientID string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := now.Add(-l.window)
	ts := pruneBefore(l.clients[clientID], windowStart)

	if len(ts) >= l.max {
		l.clients[clientID] = ts
		metrics.RecordRateLimitDenial()
		return Decision{
			Limit:      l.max,
			Reset:      now.Add(l.window),
			RetryAfter: int(math.Ceil(l.window.Seconds())),
		}
	}

	ts = append(ts, now)
	l.clients[clientID] = ts
	return Decision{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - len(ts),
		Reset:     now.Add(l.window),
	}
}

// Sweep prunes stale timestamps across all clients, drops records that
// become empty, and enforces the tracked-client cap by evicting the least
// recently active clients first.
func (l *Limiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := now.Add(-l.window)
	for id, ts := range l.clients {
		pruned := pruneBefore(ts, windowStart)
		if len(pruned) == 0 {
			delete(l.clients, id)
			continue
		}
		l.clients[id] = pruned
	}

	if l.maxClients > 0 && len(l.clients) > l.maxClients {
		type activity struct {
			id   string
			last time.Time
		}
		all := make([]activity, 0, len(l.clients))
		for id, ts := range l.clients {
			all = append(all, activity{id: id, last: ts[len(ts)-1]})
		}
		sort.Slice(all, func(i, j int) bool { return all[i].last.After(all[j].last) })
		for _, a := range all[l.maxClients:] {
			delete(l.clients, a.id)
		}
	}

	metrics.UpdateTrackedClients(len(l.clients))
}

// StartSweeper runs periodic sweeps until ctx is canceled.
func (l *Limiter) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.Sweep(now)
			}
		}
	}()
}

// Clients returns the number of currently tracked client records.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Window returns the tracked timestamps for a client, pruned copies only.
// Intended for observability and tests.
func (l *Limiter) Window(clientID string) []time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.clients[clientID]
	out := make([]time.Time, len(ts))
	copy(out, ts)
	return out
}

// pruneBefore drops timestamps at or before cutoff, preserving order.
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	var out []time.Time
	for _, t := range ts {
		if t.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}
