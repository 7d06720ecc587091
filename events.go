package qyu

import (
	"context"

	"github.com/xraph/qyu/job"
	"github.com/xraph/qyu/ratelimit"
)

// eventKind discriminates buffered lifecycle events.
type eventKind int

const (
	evDone eventKind = iota
	evFailed
	evDrain
	evStats
)

// event is one queued lifecycle notification. Events are appended under
// the queue lock in the order they occurred and delivered by a single
// drainer, so every hook observes the same global FIFO order and a drain
// always follows the completions of its quiescence interval.
type event struct {
	kind  eventKind
	entry *job.Entry
	value any
	err   error
	stats ratelimit.Stats
}

// flush drains the event buffer and delivers to hooks outside the queue
// lock. Only one goroutine drains at a time; others that find a drain in
// progress leave their events behind for it. The loop re-checks after
// each batch so nothing appended during delivery is stranded.
func (q *Queue) flush() {
	ctx := context.Background()
	for {
		q.mu.Lock()
		if q.flushing || len(q.events) == 0 {
			if !q.flushing && len(q.events) == 0 && q.limiter.Running() == 0 {
				q.notifyIdleLocked()
			}
			q.mu.Unlock()
			return
		}
		q.flushing = true
		batch := q.events
		q.events = nil
		q.mu.Unlock()

		for _, ev := range batch {
			q.deliver(ctx, ev)
		}

		q.mu.Lock()
		q.flushing = false
		q.mu.Unlock()
	}
}

// notifyIdleLocked releases everyone blocked in awaitIdle. Callers hold
// q.mu and have verified full quiescence.
func (q *Queue) notifyIdleLocked() {
	for _, ch := range q.idleWaiters {
		close(ch)
	}
	q.idleWaiters = nil
}

func (q *Queue) deliver(ctx context.Context, ev event) {
	switch ev.kind {
	case evDone:
		q.hooks.EmitJobDone(ctx, ev.entry.ID, ev.value)
		ev.entry.Resolve(ev.value)
	case evFailed:
		q.hooks.EmitJobFailed(ctx, ev.entry.ID, ev.err)
	case evDrain:
		q.hooks.EmitDrain(ctx)
	case evStats:
		q.hooks.EmitStats(ctx, ev.stats)
	}
}
