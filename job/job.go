// Package job defines the unit of work accepted by a qyu queue: the job
// body contract, per-job options, the completion ticket returned by Push,
// and the pending set the dispatcher selects from.
package job

import (
	"context"
	"time"
)

// Priority bounds. PriorityHighest is selected first; PriorityDefault is
// applied when no option overrides it.
const (
	PriorityHighest = 1
	PriorityLowest  = 10
	PriorityDefault = PriorityLowest
)

// Fn is the job body: a deferred computation producing either a value or
// an error. The context is the queue's execution context; bodies should
// honor it for long waits but the queue never cancels a dispatched body.
type Fn func(ctx context.Context) (any, error)

// Result is the payload delivered on successful completion, both through
// the done hook and through the Ticket returned by Push.
type Result struct {
	// JobID is the queue-unique identifier assigned at push time.
	JobID int64

	// Value is whatever the job body returned.
	Value any
}

// Entry is a pushed job while it is owned by the queue: pending until
// dispatched, then in flight until its completion is reported.
type Entry struct {
	// ID is assigned at push time and strictly increases per queue.
	ID int64

	// Priority orders selection: 1 first, 10 last.
	Priority int

	// Fn is the job body.
	Fn Fn

	// PushedAt records intake time.
	PushedAt time.Time

	ticket *Ticket
}

// NewEntry creates a pending entry and its completion ticket.
func NewEntry(id int64, priority int, fn Fn) *Entry {
	return &Entry{
		ID:       id,
		Priority: priority,
		Fn:       fn,
		PushedAt: time.Now(),
		ticket:   newTicket(id),
	}
}

// Ticket returns the entry's completion ticket.
func (e *Entry) Ticket() *Ticket { return e.ticket }

// Resolve delivers a successful result to the ticket. It is called at most
// once, by the queue, after the done hooks for the job have been queued.
func (e *Entry) Resolve(value any) {
	e.ticket.resolve(Result{JobID: e.ID, Value: value})
}
