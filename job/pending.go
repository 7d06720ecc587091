package job

import "container/heap"

// PendingSet holds jobs waiting for dispatch, ordered by (priority, id):
// lowest priority value first, push order within a priority. Ids increase
// per push, so ordering by id is ordering by insertion.
//
// It is a plain min-heap; the queue serializes access under its own lock.
type PendingSet struct {
	h entryHeap
}

// NewPendingSet creates an empty pending set.
func NewPendingSet() *PendingSet {
	return &PendingSet{}
}

// Push adds an entry to the set.
func (s *PendingSet) Push(e *Entry) {
	heap.Push(&s.h, e)
}

// Pop removes and returns the next entry to dispatch, or nil when empty.
func (s *PendingSet) Pop() *Entry {
	if len(s.h) == 0 {
		return nil
	}
	return heap.Pop(&s.h).(*Entry)
}

// Len reports the number of pending entries.
func (s *PendingSet) Len() int { return len(s.h) }

type entryHeap []*Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].ID < h[j].ID
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(*Entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
