package services

import (
	"context"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/account"

	"go.uber.org/zap"
)

// TokenVerifier proves bearer tokens with the identity provider. The
// transport layer derives the caller's identity from this, never from
// client-supplied session state.
type TokenVerifier struct {
	idp    ports.IdentityProvider
	logger *zap.Logger
}

// NewTokenVerifier creates a token verifier
func NewTokenVerifier(idp ports.IdentityProvider, logger *zap.Logger) *TokenVerifier {
	return &TokenVerifier{
		idp:    idp,
		logger: logger,
	}
}

// Verify returns the verified identity behind a token. The provider
// rejects forged, expired and revoked tokens; the subject claim keys the
// profile and the role comes from the verified custom claim.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (account.Identity, error) {
	ident, err := v.idp.GetAttributes(ctx, token)
	if err != nil {
		return account.Identity{}, err
	}

	if _, err := account.ParseRole(string(ident.Role)); err != nil {
		return account.Identity{}, err
	}

	userID, err := subjectFromToken(token)
	if err != nil {
		return account.Identity{}, err
	}
	ident.ID = userID

	return ident, nil
}
