// Package auth carries the authenticated caller's identity and session
// through request contexts.
package auth

import (
	"context"

	"pathshala-backend/domain/account"
	"pathshala-backend/domain/session"
	pkgerrors "pathshala-backend/pkg/errors"
)

// UserContext describes the authenticated caller
type UserContext struct {
	UserID string
	Email  string
	Role   account.Role
}

type contextKey string

const (
	userContextKey    contextKey = "user_context"
	sessionContextKey contextKey = "session"
)

// SetUserInContext stores the caller's identity in the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the caller's identity from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, pkgerrors.NewNotAuthenticatedError()
	}
	return user, nil
}

// SetSessionInContext stores the request's session in the context
func SetSessionInContext(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// GetSessionFromContext extracts the request's session from the context,
// defaulting to anonymous when none was attached
func GetSessionFromContext(ctx context.Context) session.Session {
	if sess, ok := ctx.Value(sessionContextKey).(session.Session); ok {
		return sess
	}
	return session.Anonymous()
}
