package portal

import (
	"sync"
	"sync/atomic"
)

// listState makes "last request wins" an explicit guarantee for a refreshed
// list view. Every fetch draws a sequence number before issuing its request;
// a response whose sequence number is older than the newest issued one is
// discarded instead of overwriting fresher data.
type listState[T any] struct {
	issued atomic.Uint64
	mu     sync.Mutex
	items  []T
}

// begin reserves the sequence number for a new fetch.
func (s *listState[T]) begin() uint64 {
	return s.issued.Add(1)
}

// commit installs items fetched under seq unless a newer fetch has already
// been issued. Rejecting against the issued watermark rather than the
// applied one keeps a stale response out even when the newer fetch is still
// in flight or ends up failing. It reports whether the items were installed.
func (s *listState[T]) commit(seq uint64, items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued.Load() {
		return false
	}
	s.items = items
	return true
}

// snapshot returns the current view of the list.
func (s *listState[T]) snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
