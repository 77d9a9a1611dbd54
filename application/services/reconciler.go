// Package services holds the application layer. Reconciler is the core of
// the system: it orchestrates the identity provider and the profile store
// into a single coherent session view across sign-in, sign-up, recovery,
// sign-out and attribute updates.
package services

import (
	"context"
	"errors"
	"time"

	"pathshala-backend/application/ports"
	"pathshala-backend/domain/account"
	"pathshala-backend/domain/session"
	pkgerrors "pathshala-backend/pkg/errors"

	"go.uber.org/zap"
)

// Reconciler maintains a coherent merged view of "who is logged in and
// what their profile looks like". Sessions are explicit values passed in
// and returned; the reconciler itself is stateless and safe for concurrent
// use.
type Reconciler struct {
	idp      ports.IdentityProvider
	profiles ports.ProfileStore
	events   ports.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewReconciler creates a reconciler. events may be nil.
func NewReconciler(idp ports.IdentityProvider, profiles ports.ProfileStore, events ports.EventPublisher, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		idp:      idp,
		profiles: profiles,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// SignIn exchanges credentials for a bearer token, reconciles the profile
// and returns the authenticated session with the merged snapshot cached.
func (r *Reconciler) SignIn(ctx context.Context, sess session.Session, email, password string) (session.Session, error) {
	cred, err := r.idp.ExchangeCredentials(ctx, email, password)
	if err != nil {
		// IdP rejection surfaces verbatim; credential state is discarded
		return sess.Clear(), err
	}

	ident, err := r.idp.GetAttributes(ctx, cred.Token)
	if err != nil {
		// Token was issued but the attribute fetch failed; the attempt
		// fails as a whole
		return sess.Clear(), pkgerrors.NewAttributeFetchError("failed to fetch verified attributes").WithCause(err)
	}

	// The stable identifier comes from the token's subject claim, never
	// from client input
	userID, err := subjectFromToken(cred.Token)
	if err != nil {
		return sess.Clear(), pkgerrors.NewAuthenticationError("issued token carries no subject").WithCause(err)
	}
	ident.ID = userID

	snapshot, err := r.reconcileProfile(ctx, ident)
	if err != nil {
		return sess.Clear(), err
	}

	r.publish(ctx, "account.signed_in", userID)
	return sess.Authenticate(cred.Token, cred.ExpiresAt, snapshot), nil
}

// SignUp validates the password policy locally, then registers the
// identity with the role stored as an immutable custom claim. No profile
// record is created; creation is deferred to the first successful sign-in.
// A policy violation leaves the session state untouched.
func (r *Reconciler) SignUp(ctx context.Context, sess session.Session, email, password, name string, role account.Role) (session.Session, error) {
	if err := account.ValidatePassword(password); err != nil {
		return sess, err
	}

	if err := r.idp.Register(ctx, email, password, name, role); err != nil {
		return sess.Clear(), err
	}

	r.publish(ctx, "account.registered", "")
	return session.Session{State: session.StatePendingVerification, Generation: sess.Generation + 1}, nil
}

// ConfirmSignUp forwards the emailed verification code. Success lands on
// anonymous; the caller must sign in explicitly afterwards.
func (r *Reconciler) ConfirmSignUp(ctx context.Context, sess session.Session, email, code string) (session.Session, error) {
	if err := r.idp.ConfirmRegistration(ctx, email, code); err != nil {
		return sess, err
	}
	return sess.Clear(), nil
}

// SignOut invalidates the bearer token globally at the identity provider,
// then clears local state. Local cleanup happens even when the provider
// call fails; that failure is logged, never surfaced.
func (r *Reconciler) SignOut(ctx context.Context, sess session.Session) session.Session {
	if sess.HasToken() {
		if err := r.idp.InvalidateToken(ctx, sess.Token); err != nil {
			r.logger.Warn("token invalidation failed during sign-out",
				zap.Error(err),
			)
		}
	}
	return sess.Clear()
}

// ForgotPassword starts the two-step recovery flow
func (r *Reconciler) ForgotPassword(ctx context.Context, sess session.Session, email string) (session.Session, error) {
	if err := r.idp.RequestPasswordReset(ctx, email); err != nil {
		return sess, err
	}
	return session.Session{State: session.StateRecoveringPassword, Generation: sess.Generation + 1}, nil
}

// ConfirmForgotPassword completes recovery. The new password is held to
// the same policy as registration; success returns to anonymous and
// requires a fresh sign-in.
func (r *Reconciler) ConfirmForgotPassword(ctx context.Context, sess session.Session, email, code, newPassword string) (session.Session, error) {
	if err := account.ValidatePassword(newPassword); err != nil {
		return sess, err
	}
	if err := r.idp.ConfirmPasswordReset(ctx, email, code, newPassword); err != nil {
		return sess, err
	}
	return sess.Clear(), nil
}

// UpdateAttributes applies a partial attribute update: provider-recognized
// fields go to the identity provider first (with a single retry after a
// re-validation pass when the token has expired), then the full patch is
// merged into the stored profile last-writer-wins. A profile persistence
// failure does NOT roll back the identity-side update.
func (r *Reconciler) UpdateAttributes(ctx context.Context, sess session.Session, patch account.Patch) (session.Session, account.Profile, error) {
	if !sess.IsAuthenticated() {
		return sess, account.Profile{}, pkgerrors.NewNotAuthenticatedError()
	}

	if attrs := patch.IdentityAttributes(); len(attrs) > 0 {
		if err := r.withFreshSession(ctx, sess, func(token string) error {
			return r.idp.UpdateAttributes(ctx, token, attrs)
		}); err != nil {
			return sess, account.Profile{}, err
		}
	}

	userID := sess.Snapshot.UserID
	stored, found, err := r.profiles.Get(ctx, userID)
	if err != nil {
		return sess, account.Profile{}, pkgerrors.NewProfilePersistError("profile lookup failed").WithCause(err)
	}
	if !found {
		return sess, account.Profile{}, pkgerrors.NewNotFoundError("profile")
	}

	patch.Apply(&stored, r.now())
	stored.UserID = userID // the key never changes, whatever the patch says

	if err := r.profiles.Update(ctx, stored); err != nil {
		// Accepted consistency gap: the identity provider already took the
		// update and is not rolled back here
		return sess, account.Profile{}, pkgerrors.NewProfilePersistError("profile update failed").WithCause(err)
	}

	r.publish(ctx, "account.profile_updated", userID)
	return sess.WithSnapshot(stored), stored, nil
}

// ReconcileOnLoad revalidates a resumed session against the identity
// provider. Any failure degrades gracefully to a cleared, anonymous
// session; this path never returns an error for the caller to handle.
// Token-less mid-flow states (pending verification, password recovery)
// have nothing to revalidate and survive the load untouched.
func (r *Reconciler) ReconcileOnLoad(ctx context.Context, sess session.Session) session.Session {
	if !sess.HasToken() {
		switch sess.State {
		case session.StatePendingVerification, session.StateRecoveringPassword:
			return sess
		}
		return session.Anonymous()
	}

	next, err := r.revalidate(ctx, sess)
	if err != nil {
		r.logger.Info("stored session rejected, degrading to anonymous",
			zap.Error(err),
		)
		return sess.Clear()
	}
	return next
}

// revalidate runs the full reconciliation algorithm against the stored token
func (r *Reconciler) revalidate(ctx context.Context, sess session.Session) (session.Session, error) {
	ident, err := r.idp.GetAttributes(ctx, sess.Token)
	if err != nil {
		return sess, err
	}

	if _, err := account.ParseRole(string(ident.Role)); err != nil {
		return sess, err
	}

	userID, err := subjectFromToken(sess.Token)
	if err != nil {
		return sess, err
	}
	ident.ID = userID

	snapshot, err := r.reconcileProfile(ctx, ident)
	if err != nil {
		return sess, err
	}

	return sess.Authenticate(sess.Token, sess.ExpiresAt, snapshot), nil
}

// reconcileProfile is the merge algorithm shared by sign-in and
// revalidation:
//
//  1. fetch the profile; create it lazily (conditionally) when absent
//  2. overlay identity-provider attributes, provider values winning when
//     present and non-empty
//  3. touch last-login
//  4. write back only when the merged record differs from the loaded base;
//     that write is best-effort and only logged on failure
func (r *Reconciler) reconcileProfile(ctx context.Context, ident account.Identity) (account.Profile, error) {
	stored, found, err := r.profiles.Get(ctx, ident.ID)
	if err != nil {
		return account.Profile{}, pkgerrors.NewAttributeFetchError("profile lookup failed").WithCause(err)
	}

	if !found {
		fresh := account.NewProfile(ident.ID, ident.Email, ident.Role, r.now())
		switch err := r.profiles.Create(ctx, fresh); {
		case err == nil:
			stored = fresh
		case isProfileExists(err):
			// Lost a concurrent create race; the record is there now
			stored, found, err = r.profiles.Get(ctx, ident.ID)
			if err != nil || !found {
				return account.Profile{}, pkgerrors.NewProfilePersistError("profile re-read after create race failed").WithCause(err)
			}
		default:
			return account.Profile{}, pkgerrors.NewProfilePersistError("profile create failed").WithCause(err)
		}
	}

	base := stored
	merged := stored.MergeIdentity(ident)
	merged.TouchLastLogin(r.now())

	if !merged.Equal(base) {
		if err := r.profiles.Update(ctx, merged); err != nil {
			r.logger.Warn("best-effort profile write-back failed",
				zap.String("userId", ident.ID),
				zap.Error(err),
			)
		}
	}

	return merged, nil
}

// withFreshSession runs an authenticated provider call, and on a token
// expiry performs exactly one re-validation pass before retrying exactly
// once. Every authenticated operation shares this wrapper; there is no
// per-operation retry logic.
func (r *Reconciler) withFreshSession(ctx context.Context, sess session.Session, fn func(token string) error) error {
	err := fn(sess.Token)
	if err == nil {
		return nil
	}
	if !r.idp.IsTokenExpired(err) {
		return pkgerrors.NewAttributeUpdateError("identity attribute update failed").WithCause(err)
	}

	if _, rerr := r.revalidate(ctx, sess); rerr != nil {
		return pkgerrors.NewAttributeUpdateError("re-validation after token expiry failed").WithCause(rerr)
	}

	// The provider exposes no refresh operation, so the retry reuses the
	// same credential. It only succeeds when the provider accepts the token
	// again after re-validation (transient revocation checks, clock skew);
	// a genuinely expired token fails the second call too and surfaces
	// below.
	if err := fn(sess.Token); err != nil {
		return pkgerrors.NewAttributeUpdateError("identity attribute update failed after retry").WithCause(err)
	}
	return nil
}

// publish emits an audit event best-effort
func (r *Reconciler) publish(ctx context.Context, eventType, userID string) {
	if r.events == nil {
		return
	}
	err := r.events.Publish(ctx, ports.Event{
		Type:      eventType,
		UserID:    userID,
		Timestamp: r.now(),
	})
	if err != nil {
		r.logger.Warn("audit event publish failed",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

// isProfileExists reports a duplicate-create rejection
func isProfileExists(err error) bool {
	var exists *ports.ProfileExistsError
	return errors.As(err, &exists)
}
