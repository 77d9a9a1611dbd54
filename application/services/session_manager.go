package services

import (
	"sync"

	"pathshala-backend/domain/session"
)

// SessionManager owns the mutable session state for one client context,
// with an explicit lifecycle: built when the client context starts, torn
// down at sign-out. Concurrent operations each capture the generation they
// started from; a result computed against a session that has since been
// replaced is dropped instead of clobbering newer state.
type SessionManager struct {
	mu  sync.Mutex
	cur session.Session
}

// NewSessionManager creates a manager seeded with an initial session
func NewSessionManager(initial session.Session) *SessionManager {
	return &SessionManager{cur: initial}
}

// Current returns the session value an operation should run against
func (m *SessionManager) Current() session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Apply installs next only if the session has not moved past the
// generation the operation started from. Returns false for stale results.
func (m *SessionManager) Apply(startedFrom uint64, next session.Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur.Generation != startedFrom {
		return false
	}
	m.cur = next
	return true
}

// Replace installs next unconditionally
func (m *SessionManager) Replace(next session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = next
}
