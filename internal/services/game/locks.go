package game

import (
	"sync"

	"github.com/mcoot/dragonword-go/internal/model"
)

// lockTable hands out one mutex per session so mutations on a session are
// serialized without blocking unrelated sessions.
type lockTable struct {
	mu    sync.Mutex
	locks map[model.SessionID]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{
		locks: make(map[model.SessionID]*sync.Mutex),
	}
}

// acquire locks the given session's mutex, creating it on first use, and
// returns the unlock function.
func (t *lockTable) acquire(id model.SessionID) func() {
	t.mu.Lock()
	lock, ok := t.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[id] = lock
	}
	t.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// forget drops the mutex for a deleted session. Callers holding the mutex
// keep their reference; new acquirers get a fresh one, which is fine once
// the session no longer exists in storage.
func (t *lockTable) forget(id model.SessionID) {
	t.mu.Lock()
	delete(t.locks, id)
	t.mu.Unlock()
}
