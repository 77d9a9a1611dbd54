package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pathshala-backend/domain/account"
	"pathshala-backend/domain/session"
	"pathshala-backend/pkg/auth"

	"go.uber.org/zap"
)

// Cookie names for the persisted local session state. The token is
// HttpOnly; the snapshot cookie stays readable so the UI can render
// optimistically before reconciliation completes.
const (
	TokenCookie    = "pathshala_access_token"
	SnapshotCookie = "pathshala_user_data"
)

// snapshotMaxAge bounds the readable snapshot cookie
const snapshotMaxAge = 7 * 24 * time.Hour

// SessionCodec reads and writes session state as client-visible cookies
type SessionCodec struct {
	Domain string
	Secure bool
	Logger *zap.Logger
}

// snapshotPayload is the JSON document stored in the snapshot cookie
type snapshotPayload struct {
	Session session.Session `json:"session"`
}

// Read reconstructs the session from request cookies. Malformed stored
// data degrades to an anonymous session, never an error.
func (c *SessionCodec) Read(r *http.Request) session.Session {
	sess := session.Anonymous()

	if cookie, err := r.Cookie(SnapshotCookie); err == nil {
		raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		if err == nil {
			var payload snapshotPayload
			if json.Unmarshal(raw, &payload) == nil {
				sess = payload.Session
			}
		}
		if err != nil && c.Logger != nil {
			c.Logger.Debug("discarding malformed session cookie", zap.Error(err))
		}
	}

	// The token lives in its own HttpOnly cookie and wins over whatever
	// the snapshot claims
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		sess.Token = cookie.Value
	} else {
		sess.Token = ""
	}

	// A snapshot claiming authentication without a credential is noise
	if sess.Token == "" && sess.State == session.StateAuthenticated {
		sess = session.Session{State: session.StateAnonymous, Generation: sess.Generation}
	}

	return sess
}

// Write persists the session to response cookies. Anonymous sessions
// expire both cookies; token-less mid-flow states (pending verification,
// password recovery) keep the snapshot cookie so a reload can resume the
// flow.
func (c *SessionCodec) Write(w http.ResponseWriter, sess session.Session) {
	if !sess.HasToken() {
		c.expire(w, TokenCookie, true)
		if sess.State == "" || sess.State == session.StateAnonymous {
			c.expire(w, SnapshotCookie, false)
			return
		}
		c.writeSnapshot(w, sess)
		return
	}

	tokenMaxAge := int(snapshotMaxAge.Seconds())
	if !sess.ExpiresAt.IsZero() {
		if remaining := time.Until(sess.ExpiresAt); remaining > 0 {
			tokenMaxAge = int(remaining.Seconds())
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    sess.Token,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   tokenMaxAge,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	c.writeSnapshot(w, sess)
}

// writeSnapshot stores the session, minus the token, in the readable cookie
func (c *SessionCodec) writeSnapshot(w http.ResponseWriter, sess session.Session) {
	stored := sess
	stored.Token = ""
	raw, err := json.Marshal(snapshotPayload{Session: stored})
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("failed to serialize session snapshot", zap.Error(err))
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SnapshotCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(snapshotMaxAge.Seconds()),
		Secure:   c.Secure,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
}

// expire clears a cookie
func (c *SessionCodec) expire(w http.ResponseWriter, name string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		Secure:   c.Secure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteStrictMode,
	})
}

// IdentityVerifier proves a bearer token and returns the verified
// identity behind it
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (account.Identity, error)
}

// WithSession attaches the decoded session to the request context. Cookie
// contents are client-supplied, so the caller's identity is only installed
// after the bearer token is verified with the identity provider; the
// snapshot cookie contributes optimistic display data, never trust. A
// bearer token in the Authorization header overrides the cookie for API
// clients.
func WithSession(codec *SessionCodec, verifier IdentityVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := codec.Read(r)

			if header := r.Header.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					sess.Token = parts[1]
				}
			}

			ctx := r.Context()
			if sess.HasToken() {
				ident, err := verifier.Verify(ctx, sess.Token)
				if err != nil {
					if codec.Logger != nil {
						codec.Logger.Info("rejecting unverifiable bearer token", zap.Error(err))
					}
					sess = sess.Clear()
				} else {
					snapshot := sess.Snapshot.MergeIdentity(ident)
					snapshot.UserID = ident.ID
					sess = session.Session{
						State:      session.StateAuthenticated,
						Token:      sess.Token,
						ExpiresAt:  sess.ExpiresAt,
						Snapshot:   snapshot,
						Generation: sess.Generation,
					}
					ctx = auth.SetUserInContext(ctx, &auth.UserContext{
						UserID: ident.ID,
						Email:  ident.Email,
						Role:   ident.Role,
					})
				}
			}

			ctx = auth.SetSessionInContext(ctx, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated rejects requests without an authenticated session
func RequireAuthenticated() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := auth.GetUserFromContext(r.Context()); err != nil {
				respondUnauthorized(w, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated callers without one of the given roles
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				respondUnauthorized(w, "authentication required")
				return
			}

			for _, role := range roles {
				if string(user.Role) == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondWithError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(w http.ResponseWriter, message string) {
	respondWithError(w, http.StatusUnauthorized, message)
}

// respondWithError sends an error response with a specific status code
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    code,
	})
}
