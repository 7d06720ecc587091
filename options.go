package qyu

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/qyu/hook"
	"github.com/xraph/qyu/middleware"
)

// Option configures a Queue.
type Option func(*Queue) error

// WithRateLimit sets the maximum jobs started per rolling second.
// Queues without this option run in serial mode.
func WithRateLimit(n int) Option {
	return func(q *Queue) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidRateLimit, n)
		}
		q.config.RateLimit = n
		return nil
	}
}

// WithStatsInterval sets the cadence of throughput stats emission.
func WithStatsInterval(d time.Duration) Option {
	return func(q *Queue) error {
		if d <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidStatsInterval, d)
		}
		q.config.StatsInterval = d
		return nil
	}
}

// WithLogger sets the structured logger for the queue. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) error {
		q.logger = l
		return nil
	}
}

// WithHook registers a lifecycle hook. Hooks are notified in
// registration order.
func WithHook(h hook.Hook) Option {
	return func(q *Queue) error {
		q.pendingHooks = append(q.pendingHooks, h)
		return nil
	}
}

// WithMiddleware appends middleware to the job execution chain. The
// first middleware given is the outermost wrapper.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(q *Queue) error {
		q.mws = append(q.mws, mws...)
		return nil
	}
}
