package bids

import (
	"sync"

	"github.com/google/uuid"
)

// requestLocks serializes mutations per tour request. Hold renumbering
// and the accept cascade read-modify-write the whole bid set, so two
// concurrent mutations on the same request would race to duplicate or
// gap hold positions. Entries are refcounted and removed when idle.
type requestLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newRequestLocks() *requestLocks {
	return &requestLocks{locks: make(map[uuid.UUID]*lockEntry)}
}

// Lock acquires the per-request mutex and returns its unlock func.
func (l *requestLocks) Lock(tourRequestID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[tourRequestID]
	if !ok {
		entry = &lockEntry{}
		l.locks[tourRequestID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, tourRequestID)
		}
		l.mu.Unlock()
	}
}
