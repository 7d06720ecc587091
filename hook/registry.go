package hook

import (
	"context"
	"log/slog"

	"github.com/xraph/qyu/ratelimit"
)

// Named entry types pair a hook implementation with the hook name
// captured at registration time. This avoids type-asserting back to
// Hook inside the emit methods.
type jobDoneEntry struct {
	name string
	hook JobDone
}

type jobFailedEntry struct {
	name string
	hook JobFailed
}

type drainEntry struct {
	name string
	hook Drain
}

type statsEntry struct {
	name string
	hook Stats
}

// Registry holds registered hooks and dispatches lifecycle events to
// them. It type-caches hooks at registration time so emit calls iterate
// only over hooks that implement the relevant event. Hooks are notified
// in registration order; delivery to a single hook is FIFO because the
// queue serializes all emits through one drainer.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each event.
	jobDone   []jobDoneEntry
	jobFailed []jobFailedEntry
	drain     []drainEntry
	stats     []statsEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Registration is not safe concurrently with emission; register
// everything before starting the queue.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(JobDone); ok {
		r.jobDone = append(r.jobDone, jobDoneEntry{name, e})
	}
	if e, ok := h.(JobFailed); ok {
		r.jobFailed = append(r.jobFailed, jobFailedEntry{name, e})
	}
	if e, ok := h.(Drain); ok {
		r.drain = append(r.drain, drainEntry{name, e})
	}
	if e, ok := h.(Stats); ok {
		r.stats = append(r.stats, statsEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitJobDone notifies all hooks that implement JobDone.
func (r *Registry) EmitJobDone(ctx context.Context, jobID int64, result any) {
	for _, e := range r.jobDone {
		if err := e.hook.OnJobDone(ctx, jobID, result); err != nil {
			r.logHookError("OnJobDone", e.name, err)
		}
	}
}

// EmitJobFailed notifies all hooks that implement JobFailed.
func (r *Registry) EmitJobFailed(ctx context.Context, jobID int64, jobErr error) {
	for _, e := range r.jobFailed {
		if err := e.hook.OnJobFailed(ctx, jobID, jobErr); err != nil {
			r.logHookError("OnJobFailed", e.name, err)
		}
	}
}

// EmitDrain notifies all hooks that implement Drain.
func (r *Registry) EmitDrain(ctx context.Context) {
	for _, e := range r.drain {
		if err := e.hook.OnDrain(ctx); err != nil {
			r.logHookError("OnDrain", e.name, err)
		}
	}
}

// EmitStats notifies all hooks that implement Stats.
func (r *Registry) EmitStats(ctx context.Context, s ratelimit.Stats) {
	for _, e := range r.stats {
		if err := e.hook.OnStats(ctx, s); err != nil {
			r.logHookError("OnStats", e.name, err)
		}
	}
}

// logHookError logs a warning when a hook returns an error. Errors from
// hooks are never propagated; they must not block the dispatch loop.
func (r *Registry) logHookError(event, hookName string, err error) {
	r.logger.Warn("hook error",
		slog.String("event", event),
		slog.String("hook", hookName),
		slog.String("error", err.Error()),
	)
}
