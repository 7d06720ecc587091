package job

import "context"

// Ticket is the completion future returned by Push. It resolves with the
// job's Result on success and is never resolved when the job fails;
// failures surface through the queue's error hook only.
type Ticket struct {
	id int64
	ch chan Result
}

func newTicket(id int64) *Ticket {
	return &Ticket{id: id, ch: make(chan Result, 1)}
}

// JobID returns the identifier assigned to the job at push time.
func (t *Ticket) JobID() int64 { return t.id }

// Done exposes the one-shot result channel. It receives exactly one value
// if the job succeeds and stays silent forever if it fails.
func (t *Ticket) Done() <-chan Result { return t.ch }

// Wait blocks until the job succeeds or the context is cancelled.
func (t *Ticket) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-t.ch:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// resolve is one-shot by construction: the channel is buffered with
// capacity 1 and only the queue sends on it.
func (t *Ticket) resolve(res Result) {
	t.ch <- res
}
