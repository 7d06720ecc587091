package job

import (
	"context"
	"testing"
	"time"
)

func noop(_ context.Context) (any, error) { return nil, nil }

// ---------------------------------------------------------------------------
// Selection order
// ---------------------------------------------------------------------------

func TestPendingSet_PriorityOrder(t *testing.T) {
	s := NewPendingSet()
	s.Push(NewEntry(1, 8, noop))
	s.Push(NewEntry(2, 1, noop))
	s.Push(NewEntry(3, 7, noop))

	want := []int64{2, 3, 1}
	for i, id := range want {
		e := s.Pop()
		if e == nil {
			t.Fatalf("Pop %d returned nil", i)
		}
		if e.ID != id {
			t.Fatalf("Pop %d = job %d, want %d", i, e.ID, id)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty set, got %d", s.Len())
	}
}

func TestPendingSet_FIFOWithinPriority(t *testing.T) {
	s := NewPendingSet()
	for id := int64(1); id <= 5; id++ {
		s.Push(NewEntry(id, 5, noop))
	}

	for want := int64(1); want <= 5; want++ {
		e := s.Pop()
		if e.ID != want {
			t.Fatalf("Pop = job %d, want %d (FIFO within priority)", e.ID, want)
		}
	}
}

func TestPendingSet_StableUnderInterleaving(t *testing.T) {
	s := NewPendingSet()
	s.Push(NewEntry(1, 10, noop))
	s.Push(NewEntry(2, 3, noop))
	s.Push(NewEntry(3, 10, noop))
	s.Push(NewEntry(4, 3, noop))

	want := []int64{2, 4, 1, 3}
	for i, id := range want {
		if e := s.Pop(); e.ID != id {
			t.Fatalf("Pop %d = job %d, want %d", i, e.ID, id)
		}
	}
}

func TestPendingSet_PopEmpty(t *testing.T) {
	s := NewPendingSet()
	if e := s.Pop(); e != nil {
		t.Fatalf("Pop on empty set = %v, want nil", e)
	}
}

// ---------------------------------------------------------------------------
// Ticket
// ---------------------------------------------------------------------------

func TestTicket_ResolveDeliversResult(t *testing.T) {
	e := NewEntry(42, PriorityDefault, noop)
	e.Resolve("payload")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := e.Ticket().Wait(ctx)
	if err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if res.JobID != 42 {
		t.Errorf("JobID = %d, want 42", res.JobID)
	}
	if res.Value != "payload" {
		t.Errorf("Value = %v, want %q", res.Value, "payload")
	}
}

func TestTicket_WaitHonorsContext(t *testing.T) {
	e := NewEntry(1, PriorityDefault, noop)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := e.Ticket().Wait(ctx)
	if err != context.DeadlineExceeded {
		t.Fatalf("Wait error = %v, want context.DeadlineExceeded", err)
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := DefaultOptions()
	if o.Priority != PriorityDefault {
		t.Fatalf("default priority = %d, want %d", o.Priority, PriorityDefault)
	}

	WithPriority(2)(&o)
	if o.Priority != 2 {
		t.Fatalf("priority after WithPriority(2) = %d", o.Priority)
	}
}
