package services

import (
	"context"
	"errors"
	"testing"

	"pathshala-backend/domain/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTokenVerifier_ReturnsProviderBackedIdentity(t *testing.T) {
	ctx := context.Background()
	mockIdp := new(MockIdentityProvider)
	token := signedToken(t, "user-123")

	mockIdp.On("GetAttributes", ctx, token).
		Return(account.Identity{Email: "a@b.com", Role: account.RoleCoach}, nil)

	verifier := NewTokenVerifier(mockIdp, zap.NewNop())
	ident, err := verifier.Verify(ctx, token)

	require.NoError(t, err)
	// The identifier comes from the token's subject, not from anything the
	// client handed over
	assert.Equal(t, "user-123", ident.ID)
	assert.Equal(t, account.RoleCoach, ident.Role)
}

func TestTokenVerifier_RejectsWhatTheProviderRejects(t *testing.T) {
	ctx := context.Background()
	mockIdp := new(MockIdentityProvider)

	mockIdp.On("GetAttributes", ctx, "forged").
		Return(account.Identity{}, errors.New("invalid access token"))

	verifier := NewTokenVerifier(mockIdp, zap.NewNop())
	_, err := verifier.Verify(ctx, "forged")

	assert.Error(t, err)
}

func TestTokenVerifier_RejectsUnknownRoleClaim(t *testing.T) {
	ctx := context.Background()
	mockIdp := new(MockIdentityProvider)
	token := signedToken(t, "user-123")

	mockIdp.On("GetAttributes", ctx, token).
		Return(account.Identity{Email: "a@b.com", Role: account.Role("superuser")}, nil)

	verifier := NewTokenVerifier(mockIdp, zap.NewNop())
	_, err := verifier.Verify(ctx, token)

	assert.Error(t, err)
}
