package qyu

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/qyu/hook"
	"github.com/xraph/qyu/job"
	"github.com/xraph/qyu/middleware"
	"github.com/xraph/qyu/ratelimit"
)

// Queue is an in-process asynchronous job queue. Jobs pushed into it are
// dispatched highest priority first (FIFO within a priority) whenever the
// rate limiter admits another start.
//
// All scheduler state is guarded by a single lock; job bodies run on
// their own goroutines and report back through exactly two serialized
// callbacks (dispatch and completion).
type Queue struct {
	config  Config
	logger  *slog.Logger
	hooks   *hook.Registry
	limiter *ratelimit.Limiter

	// Composed middleware chain, nil when none registered.
	chain middleware.Middleware

	// Option staging, consumed by New.
	pendingHooks []hook.Hook
	mws          []middleware.Middleware

	mu      sync.Mutex
	pending *job.PendingSet
	started bool

	// drained marks that the drain event for the current quiescence has
	// been emitted; cleared by the next Push or Start.
	drained bool

	nextID int64

	// Buffered lifecycle events, see events.go.
	events   []event
	flushing bool

	// idleWaiters are released when the queue is fully quiescent:
	// nothing in flight and every buffered event delivered.
	idleWaiters []chan struct{}

	// Pending wake timer for trailing-window credit expiry.
	wake *time.Timer
}

// New creates a Queue with the given options. Without options the queue
// is serial (one job in flight) and reports stats every 500 ms once
// started.
func New(opts ...Option) (*Queue, error) {
	q := &Queue{
		config:  DefaultConfig(),
		logger:  slog.Default(),
		pending: job.NewPendingSet(),
	}
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}

	q.hooks = hook.NewRegistry(q.logger)
	for _, h := range q.pendingHooks {
		q.hooks.Register(h)
	}
	q.pendingHooks = nil

	if len(q.mws) > 0 {
		q.chain = middleware.Chain(q.mws...)
	}

	q.limiter = ratelimit.New(q.config.RateLimit, q.config.StatsInterval, q.onStats, q.logger)
	return q, nil
}

// Hooks returns the queue's hook registry. Register additional hooks
// before calling Start.
func (q *Queue) Hooks() *hook.Registry { return q.hooks }

// Config returns a copy of the queue's configuration.
func (q *Queue) Config() Config { return q.config }

// Push appends a job to the queue and returns its completion ticket.
// The ticket resolves with the job's result on success and never resolves
// on failure; failures surface through the JobFailed hook only.
//
// A nil body or a priority outside [1, 10] is rejected synchronously.
// If the queue is started, pushing triggers a dispatch pass and re-arms
// the stats interval when a previous drain disarmed it.
func (q *Queue) Push(fn job.Fn, opts ...job.Option) (*job.Ticket, error) {
	if fn == nil {
		return nil, ErrNilJob
	}

	o := job.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Priority < job.PriorityHighest || o.Priority > job.PriorityLowest {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, o.Priority)
	}

	q.mu.Lock()
	q.nextID++
	e := job.NewEntry(q.nextID, o.Priority, fn)
	q.pending.Push(e)
	q.drained = false

	q.logger.Debug("job pushed",
		slog.Int64("job_id", e.ID),
		slog.Int("priority", e.Priority),
		slog.Int("pending", q.pending.Len()),
	)

	if q.started {
		q.limiter.Toggle(true)
		q.dispatchLocked()
	}
	q.mu.Unlock()
	q.flush()

	return e.Ticket(), nil
}

// Start begins dispatching: it arms the stats interval, runs one
// dispatch pass, and returns without waiting for jobs to finish.
// Starting an already-started queue is a no-op.
func (q *Queue) Start(_ context.Context) error {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return nil
	}
	q.started = true
	q.drained = false

	q.logger.Info("queue started",
		slog.Int("rate_limit", q.config.RateLimit),
		slog.Int("pending", q.pending.Len()),
	)

	q.limiter.Toggle(true)
	q.dispatchLocked()
	q.mu.Unlock()
	q.flush()

	return nil
}

// Pause stops dispatching in two phases: new dispatches are inhibited
// immediately, then Pause blocks until all in-flight jobs have completed
// before disarming the stats interval. Jobs may still be pushed while
// paused; they wait for the next Start.
//
// If the context is cancelled while waiting, the queue stays paused and
// in-flight jobs keep running; re-invoke Pause to finish the second phase.
func (q *Queue) Pause(ctx context.Context) error {
	q.mu.Lock()
	wasStarted := q.started
	q.started = false
	q.mu.Unlock()

	if wasStarted {
		q.logger.Info("queue pausing", slog.Int("in_flight", q.limiter.Running()))
	}

	if err := q.limiter.WaitForDrain(ctx); err != nil {
		return err
	}
	q.limiter.Toggle(false)

	// In-flight jobs are gone; now wait until their buffered events have
	// been delivered, so a resolved Pause means every completion has been
	// observed by the hooks.
	if err := q.awaitIdle(ctx); err != nil {
		return err
	}

	if wasStarted {
		q.logger.Info("queue paused")
	}
	return nil
}

// awaitIdle blocks until nothing is in flight and the event buffer has
// fully drained. Must not be called from inside a hook handler: the
// handler runs on the event drainer, which can never be idle while it is
// executing.
func (q *Queue) awaitIdle(ctx context.Context) error {
	for {
		q.flush()

		q.mu.Lock()
		if q.limiter.Running() == 0 && len(q.events) == 0 && !q.flushing {
			q.mu.Unlock()
			return nil
		}
		ch := make(chan struct{})
		q.idleWaiters = append(q.idleWaiters, ch)
		q.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Started reports whether the queue is currently dispatching.
func (q *Queue) Started() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.started
}

// Pending returns the number of jobs waiting for dispatch.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len()
}

// InFlight returns the number of dispatched jobs whose completion has not
// yet been reported.
func (q *Queue) InFlight() int { return q.limiter.Running() }

// dispatchLocked runs the dispatch selection until the queue pauses, the
// pending set empties, or admission is denied. Callers hold q.mu.
//
// Reaching quiescence (nothing pending, nothing in flight) while started
// queues the drain event and disarms the stats interval.
func (q *Queue) dispatchLocked() {
	for {
		if !q.started {
			return
		}

		if q.pending.Len() == 0 {
			if q.limiter.Running() == 0 && !q.drained {
				q.drained = true
				q.events = append(q.events, event{kind: evDrain})
				q.limiter.Toggle(false)
				q.logger.Info("queue drained")
			}
			return
		}

		if !q.limiter.Admit() {
			if d := q.limiter.RetryAfter(); d > 0 {
				q.scheduleWakeLocked(d)
			}
			return
		}

		e := q.pending.Pop()
		q.limiter.JobStarted()

		q.logger.Debug("job dispatched",
			slog.Int64("job_id", e.ID),
			slog.Int("priority", e.Priority),
			slog.Int("in_flight", q.limiter.Running()),
		)

		go q.run(e)
	}
}

// run executes a job body on its own goroutine and reports the outcome.
func (q *Queue) run(e *job.Entry) {
	ctx := context.Background()

	var value any
	var err error
	if q.chain != nil {
		value, err = q.chain(ctx, e, middleware.Handler(e.Fn))
	} else {
		value, err = e.Fn(ctx)
	}

	q.onCompletion(e, value, err)
}

// onCompletion funnels both outcomes of a job body through one handler:
// the limiter releases the slot and records the completion, the matching
// lifecycle event is queued, and the dispatch selection runs again.
func (q *Queue) onCompletion(e *job.Entry, value any, err error) {
	q.mu.Lock()
	q.limiter.JobEnded()

	if err != nil {
		q.events = append(q.events, event{kind: evFailed, entry: e, err: err})
		q.logger.Debug("job errored",
			slog.Int64("job_id", e.ID),
			slog.String("error", err.Error()),
		)
	} else {
		q.events = append(q.events, event{kind: evDone, entry: e, value: value})
		q.logger.Debug("job done", slog.Int64("job_id", e.ID))
	}

	q.dispatchLocked()
	q.mu.Unlock()
	q.flush()
}

// onStats receives each periodic sample from the limiter's ticker, queues
// the stats event, and re-invokes dispatch: a limiter tick is one of the
// "maybe run more" triggers.
func (q *Queue) onStats(s ratelimit.Stats) {
	q.mu.Lock()
	if !q.limiter.Armed() {
		// A tick can race a concurrent disarm; drop it.
		q.mu.Unlock()
		return
	}
	q.events = append(q.events, event{kind: evStats, stats: s})
	q.dispatchLocked()
	q.mu.Unlock()
	q.flush()
}

// scheduleWakeLocked (re)arms a one-shot timer that re-runs dispatch when
// the earliest trailing-window credit expires. Completions also trigger
// dispatch, so the timer only matters when nothing is in flight.
// Callers hold q.mu.
func (q *Queue) scheduleWakeLocked(d time.Duration) {
	if q.wake != nil {
		q.wake.Stop()
	}
	q.wake = time.AfterFunc(d, func() {
		q.mu.Lock()
		q.wake = nil
		q.dispatchLocked()
		q.mu.Unlock()
		q.flush()
	})
}
