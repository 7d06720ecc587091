// Package ratelimit implements the admission side of a qyu queue: it
// decides whether another job may start now, tracks the in-flight count
// and the trailing one-second completion window, emits periodic
// throughput stats while armed, and signals drain when the in-flight
// count returns to zero.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Serial is the rate-limit sentinel meaning "at most one job in flight".
const Serial = 0

// window is the trailing span completions are counted over.
const window = time.Second

// Limiter tracks in-flight jobs against a jobs-per-rolling-second budget.
// It is safe for concurrent use.
type Limiter struct {
	mu sync.Mutex

	// limit is the maximum jobs per rolling second; Serial (0) caps the
	// in-flight count at one instead.
	limit int

	// statsInterval is the cadence of stats emission while armed.
	statsInterval time.Duration

	// onStats receives each periodic throughput sample. Called from the
	// ticker goroutine with no lock held.
	onStats func(Stats)

	logger *slog.Logger

	running     int
	completions []time.Time

	// Stats accounting, reset each time the ticker is armed.
	processed int
	armedAt   time.Time
	armed     bool
	stopStats chan struct{}

	drainWaiters []chan struct{}
}

// Stats is the periodic throughput sample emitted while the limiter is
// armed.
type Stats struct {
	// JobsPerSecond is the cumulative average since the stats interval
	// was last armed, not a rolling measurement.
	JobsPerSecond float64
}

// New creates a Limiter. A limit of Serial (0) means at most one job in
// flight; a positive limit is the jobs-per-rolling-second budget. onStats
// may be nil when no stats consumer exists.
func New(limit int, statsInterval time.Duration, onStats func(Stats), logger *slog.Logger) *Limiter {
	if onStats == nil {
		onStats = func(Stats) {}
	}
	return &Limiter{
		limit:         limit,
		statsInterval: statsInterval,
		onStats:       onStats,
		logger:        logger,
	}
}

// Admit reports whether a new job may start now.
//
// In serial mode the answer is true iff nothing is in flight. In
// rate-limited mode the in-flight count plus the completions of the
// trailing second must stay below the limit, which bounds steady-state
// throughput at the limit per rolling second while permitting bursts up
// to the limit concurrent.
func (l *Limiter) Admit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.limit == Serial {
		return l.running == 0
	}

	l.prune(time.Now())
	return l.running+len(l.completions) < l.limit
}

// RetryAfter returns how long until a trailing-window credit expires and
// admission is worth retrying, or zero when no timed credit is pending
// (admission is either possible now or gated on a completion).
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.limit == Serial {
		return 0
	}

	now := time.Now()
	l.prune(now)
	if l.running+len(l.completions) < l.limit || len(l.completions) == 0 {
		return 0
	}

	d := l.completions[0].Add(window).Sub(now)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

// JobStarted records a dispatch: one more job in flight, one more toward
// the stats counter. The caller must have seen Admit() return true since
// the last state change.
func (l *Limiter) JobStarted() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.running++
	l.processed++

	if l.limit != Serial && l.running > l.limit {
		panic("ratelimit: in-flight count exceeds rate limit")
	}
	if l.limit == Serial && l.running > 1 {
		panic("ratelimit: concurrent dispatch in serial mode")
	}
}

// JobEnded records a completion (success or failure): the job leaves the
// in-flight count and its timestamp enters the trailing window. When the
// in-flight count reaches zero all drain waiters are released.
func (l *Limiter) JobEnded() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running == 0 {
		panic("ratelimit: JobEnded without matching JobStarted")
	}
	l.running--

	now := time.Now()
	l.prune(now)
	l.completions = append(l.completions, now)

	if l.running == 0 {
		for _, ch := range l.drainWaiters {
			close(ch)
		}
		l.drainWaiters = nil
	}
}

// Running returns the current in-flight count.
func (l *Limiter) Running() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// WaitForDrain blocks until the in-flight count is zero or the context is
// cancelled. It returns immediately when nothing is in flight.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	l.mu.Lock()
	if l.running == 0 {
		l.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	l.drainWaiters = append(l.drainWaiters, ch)
	l.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// prune drops completion timestamps older than the trailing window.
// Callers hold l.mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(l.completions) && !l.completions[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.completions = append(l.completions[:0], l.completions[i:]...)
	}
}
