package session

import (
	"testing"
	"time"

	"pathshala-backend/domain/account"

	"github.com/stretchr/testify/assert"
)

func TestAnonymous(t *testing.T) {
	s := Anonymous()

	assert.Equal(t, StateAnonymous, s.State)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.HasToken())
}

func TestAuthenticate_BumpsGeneration(t *testing.T) {
	base := Session{State: StateAuthenticating, Generation: 4}
	expiry := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	snapshot := account.Profile{UserID: "user-1"}

	next := base.Authenticate("tok", expiry, snapshot)

	assert.True(t, next.IsAuthenticated())
	assert.Equal(t, "tok", next.Token)
	assert.Equal(t, uint64(5), next.Generation)
	assert.Equal(t, "user-1", next.Snapshot.UserID)
}

func TestClear_DropsEverythingButBumpsGeneration(t *testing.T) {
	s := Session{
		State:      StateAuthenticated,
		Token:      "tok",
		Snapshot:   account.Profile{UserID: "user-1"},
		Generation: 7,
	}

	next := s.Clear()

	assert.Equal(t, StateAnonymous, next.State)
	assert.Empty(t, next.Token)
	assert.Empty(t, next.Snapshot.UserID)
	assert.Equal(t, uint64(8), next.Generation)
}

func TestIsAuthenticated_RequiresTokenAndState(t *testing.T) {
	assert.False(t, Session{State: StateAuthenticated}.IsAuthenticated())
	assert.False(t, Session{State: StateAnonymous, Token: "tok"}.IsAuthenticated())
	assert.True(t, Session{State: StateAuthenticated, Token: "tok"}.IsAuthenticated())
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Session{}.Expired(now), "zero expiry never expires")
	assert.False(t, Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}

func TestWithSnapshot_KeepsCredential(t *testing.T) {
	s := Session{State: StateAuthenticated, Token: "tok", Generation: 2}

	next := s.WithSnapshot(account.Profile{UserID: "user-1"})

	assert.Equal(t, "tok", next.Token)
	assert.Equal(t, uint64(2), next.Generation)
	assert.Equal(t, "user-1", next.Snapshot.UserID)
}
