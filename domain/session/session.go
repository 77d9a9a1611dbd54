package session

import (
	"time"

	"pathshala-backend/domain/account"
)

// State is the client-session state machine position
type State string

const (
	StateAnonymous           State = "anonymous"
	StateAuthenticating      State = "authenticating"
	StateAuthenticated       State = "authenticated"
	StateRegistering         State = "registering"
	StatePendingVerification State = "pending_verification"
	StateRecoveringPassword  State = "recovering_password"
)

// Session is the local cached view of an authenticated client: a bearer
// token plus the last-known merged identity/profile snapshot. It is a
// plain value threaded explicitly through operations; there is no ambient
// singleton.
type Session struct {
	State     State           `json:"state"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt time.Time       `json:"expiresAt,omitzero"`
	Snapshot  account.Profile `json:"snapshot,omitzero"`

	// Generation increments every time the session is replaced or cleared.
	// Operations capture it before calling out to collaborators and refuse
	// to apply results against a session that has since moved on.
	Generation uint64 `json:"generation"`
}

// Anonymous returns a fresh logged-out session
func Anonymous() Session {
	return Session{State: StateAnonymous}
}

// IsAuthenticated reports whether the session carries a live authenticated view
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Token != ""
}

// HasToken reports whether a bearer token is stored, regardless of state
func (s Session) HasToken() bool {
	return s.Token != ""
}

// Expired reports whether the stored token is past its expiry
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Authenticate transitions into the authenticated state with a new token
// and snapshot, bumping the generation.
func (s Session) Authenticate(token string, expiresAt time.Time, snapshot account.Profile) Session {
	return Session{
		State:      StateAuthenticated,
		Token:      token,
		ExpiresAt:  expiresAt,
		Snapshot:   snapshot,
		Generation: s.Generation + 1,
	}
}

// WithSnapshot replaces the cached snapshot without touching the credential
func (s Session) WithSnapshot(snapshot account.Profile) Session {
	s.Snapshot = snapshot
	return s
}

// Clear discards the credential and snapshot, returning to anonymous.
// Every unrecoverable failure path lands here.
func (s Session) Clear() Session {
	return Session{State: StateAnonymous, Generation: s.Generation + 1}
}
