// Package hook defines the subscription system for qyu lifecycle events.
// Hooks are notified of job completion, job failure, queue drain, and
// periodic throughput stats.
//
// Each event is a separate interface so hooks opt in only to the events
// they care about.
package hook

import (
	"context"

	"github.com/xraph/qyu/ratelimit"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// JobDone is called after a job body completes successfully.
type JobDone interface {
	OnJobDone(ctx context.Context, jobID int64, result any) error
}

// JobFailed is called when a job body returns an error. The job's push
// ticket is never resolved; this event is the only failure surface.
type JobFailed interface {
	OnJobFailed(ctx context.Context, jobID int64, err error) error
}

// Drain is called when the queue reaches quiescence: nothing pending and
// nothing in flight. Fired exactly once per start-to-quiescence episode.
type Drain interface {
	OnDrain(ctx context.Context) error
}

// Stats is called on each stats-interval tick while the queue is active.
type Stats interface {
	OnStats(ctx context.Context, s ratelimit.Stats) error
}
