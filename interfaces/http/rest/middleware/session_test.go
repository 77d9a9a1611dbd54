package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pathshala-backend/domain/account"
	"pathshala-backend/domain/session"
	"pathshala-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCodec() *SessionCodec {
	return &SessionCodec{Logger: zap.NewNop()}
}

// stubVerifier stands in for the identity-provider-backed verifier
type stubVerifier struct {
	ident account.Identity
	err   error
	calls int
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (account.Identity, error) {
	s.calls++
	return s.ident, s.err
}

func cookiesFromRecorder(t *testing.T, rec *httptest.ResponseRecorder) []*http.Cookie {
	t.Helper()
	res := rec.Result()
	defer res.Body.Close()
	return res.Cookies()
}

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec := testCodec()

	sess := session.Session{
		State:     session.StateAuthenticated,
		Token:     "bearer-token",
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
		Snapshot:  account.Profile{UserID: "user-1", Email: "a@b.com", Role: account.RoleCoach},
	}

	rec := httptest.NewRecorder()
	codec.Write(rec, sess)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFromRecorder(t, rec) {
		req.AddCookie(c)
	}

	got := codec.Read(req)

	assert.Equal(t, "bearer-token", got.Token)
	assert.Equal(t, session.StateAuthenticated, got.State)
	assert.Equal(t, "user-1", got.Snapshot.UserID)
	assert.Equal(t, account.RoleCoach, got.Snapshot.Role)
}

func TestSessionCodec_TokenCookieIsHttpOnly(t *testing.T) {
	codec := testCodec()

	rec := httptest.NewRecorder()
	codec.Write(rec, session.Session{State: session.StateAuthenticated, Token: "tok"})

	var tokenCookie, snapshotCookie *http.Cookie
	for _, c := range cookiesFromRecorder(t, rec) {
		switch c.Name {
		case TokenCookie:
			tokenCookie = c
		case SnapshotCookie:
			snapshotCookie = c
		}
	}

	require.NotNil(t, tokenCookie)
	require.NotNil(t, snapshotCookie)
	assert.True(t, tokenCookie.HttpOnly)
	assert.False(t, snapshotCookie.HttpOnly)
	// The snapshot never embeds the token
	assert.NotContains(t, snapshotCookie.Value, "tok")
}

func TestSessionCodec_AnonymousWriteExpiresCookies(t *testing.T) {
	codec := testCodec()

	rec := httptest.NewRecorder()
	codec.Write(rec, session.Anonymous())

	cookies := cookiesFromRecorder(t, rec)
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Negative(t, c.MaxAge)
	}
}

func TestSessionCodec_PendingVerificationSurvivesRoundTrip(t *testing.T) {
	codec := testCodec()

	rec := httptest.NewRecorder()
	codec.Write(rec, session.Session{State: session.StatePendingVerification, Generation: 3})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFromRecorder(t, rec) {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}

	got := codec.Read(req)

	assert.Equal(t, session.StatePendingVerification, got.State)
	assert.False(t, got.HasToken())
	assert.Equal(t, uint64(3), got.Generation)
}

func TestSessionCodec_MalformedCookieDegradesToAnonymous(t *testing.T) {
	codec := testCodec()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SnapshotCookie, Value: "%%%not-base64%%%"})

	got := codec.Read(req)

	assert.Equal(t, session.StateAnonymous, got.State)
	assert.False(t, got.HasToken())
}

func TestWithSession_IdentityComesFromVerifierNotCookie(t *testing.T) {
	codec := testCodec()

	// The snapshot cookie claims a different user than the token resolves
	// to; the verified identity must win
	sess := session.Session{
		State:    session.StateAuthenticated,
		Token:    "tok",
		Snapshot: account.Profile{UserID: "cookie-user", Email: "cookie@b.com", Role: account.RoleAdmin},
	}
	rec := httptest.NewRecorder()
	codec.Write(rec, sess)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFromRecorder(t, rec) {
		req.AddCookie(c)
	}

	verifier := &stubVerifier{ident: account.Identity{ID: "user-1", Email: "a@b.com", Role: account.RoleStudent}}

	var gotUser *auth.UserContext
	var gotSess session.Session
	handler := WithSession(codec, verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.GetUserFromContext(r.Context())
		gotSess = auth.GetSessionFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, gotUser)
	assert.Equal(t, 1, verifier.calls)
	assert.Equal(t, "user-1", gotUser.UserID)
	assert.Equal(t, account.RoleStudent, gotUser.Role)
	assert.Equal(t, "user-1", gotSess.Snapshot.UserID)
}

func TestWithSession_ForgedCookiesGetNoIdentity(t *testing.T) {
	codec := testCodec()

	// Hand-crafted cookies claiming an authenticated admin, paired with a
	// token the provider rejects
	forged := session.Session{
		State:    session.StateAuthenticated,
		Token:    "made-up-token",
		Snapshot: account.Profile{UserID: "victim", Email: "victim@b.com", Role: account.RoleAdmin},
	}
	rec := httptest.NewRecorder()
	codec.Write(rec, forged)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFromRecorder(t, rec) {
		req.AddCookie(c)
	}

	verifier := &stubVerifier{err: errors.New("token is invalid")}

	var gotUser *auth.UserContext
	var gotErr error
	var gotSess session.Session
	handler := WithSession(codec, verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotErr = auth.GetUserFromContext(r.Context())
		gotSess = auth.GetSessionFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Nil(t, gotUser)
	assert.Error(t, gotErr)
	assert.Equal(t, session.StateAnonymous, gotSess.State)
	assert.False(t, gotSess.IsAuthenticated())

	// And the gate keeps the request out
	gated := WithSession(codec, verifier)(RequireAuthenticated()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFromRecorder(t, rec) {
		req2.AddCookie(c)
	}
	gatedRec := httptest.NewRecorder()
	gated.ServeHTTP(gatedRec, req2)
	assert.Equal(t, http.StatusUnauthorized, gatedRec.Code)
}

func TestWithSession_SnapshotAloneGrantsNothing(t *testing.T) {
	codec := testCodec()

	// Snapshot cookie only, no token cookie at all; the verifier must not
	// even be consulted and no identity is attached
	forged := session.Session{
		State:    session.StateAuthenticated,
		Token:    "t",
		Snapshot: account.Profile{UserID: "victim", Role: account.RoleAdmin},
	}
	rec := httptest.NewRecorder()
	codec.Write(rec, forged)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookiesFromRecorder(t, rec) {
		if c.Name == SnapshotCookie {
			req.AddCookie(c)
		}
	}

	verifier := &stubVerifier{ident: account.Identity{ID: "victim", Role: account.RoleAdmin}}

	var gotUser *auth.UserContext
	var gotSess session.Session
	handler := WithSession(codec, verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.GetUserFromContext(r.Context())
		gotSess = auth.GetSessionFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Zero(t, verifier.calls)
	assert.Nil(t, gotUser)
	assert.False(t, gotSess.IsAuthenticated())
}

func TestWithSession_BearerHeaderOverridesCookie(t *testing.T) {
	codec := testCodec()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	verifier := &stubVerifier{ident: account.Identity{ID: "user-1", Role: account.RoleStudent}}

	var got session.Session
	handler := WithSession(codec, verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.GetSessionFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "header-token", got.Token)
	assert.Equal(t, 1, verifier.calls)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("coach")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// No identity at all
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong role
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "u", Role: account.RoleStudent}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Matching role
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "u", Role: account.RoleCoach}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
