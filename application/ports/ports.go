// Package ports defines the collaborator contracts consumed by the
// application layer. Infrastructure adapters implement these; services
// depend only on the interfaces.
package ports

import (
	"context"
	"time"

	"pathshala-backend/domain/account"
	"pathshala-backend/domain/catalog"
)

// Credential is a bearer token issued by the identity provider
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// IdentityProvider authenticates credentials, issues bearer tokens and
// stores a small set of verified attributes. All failures, transport-level
// or provider rejections, surface as taxonomy errors.
type IdentityProvider interface {
	// ExchangeCredentials trades email+password for a bearer token
	ExchangeCredentials(ctx context.Context, email, password string) (Credential, error)

	// GetAttributes fetches the verified attributes behind a token
	GetAttributes(ctx context.Context, token string) (account.Identity, error)

	// Register creates a new identity; confirmation happens out-of-band
	Register(ctx context.Context, email, password, name string, role account.Role) error

	// ConfirmRegistration submits the emailed verification code
	ConfirmRegistration(ctx context.Context, email, code string) error

	// UpdateAttributes writes provider-recognized attributes under a token
	UpdateAttributes(ctx context.Context, token string, attributes map[string]string) error

	// InvalidateToken revokes the credential globally, all sessions included
	InvalidateToken(ctx context.Context, token string) error

	// RequestPasswordReset starts the two-step recovery flow
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset completes recovery with code and new password
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error

	// IsTokenExpired reports whether err indicates an expired or revoked
	// bearer token, the one condition that warrants a single retry
	IsTokenExpired(err error) bool
}

// ProfileExistsError is returned by ProfileStore.Create when the record
// already exists; callers re-read instead of failing (safe under races).
type ProfileExistsError struct{ UserID string }

func (e *ProfileExistsError) Error() string {
	return "profile already exists: " + e.UserID
}

// ProfileStore is the key-value record store for extended user profiles
type ProfileStore interface {
	// Get returns the profile, or found=false when absent
	Get(ctx context.Context, userID string) (account.Profile, bool, error)

	// Create writes a profile only if none exists for the identifier,
	// returning *ProfileExistsError on a duplicate
	Create(ctx context.Context, profile account.Profile) error

	// Put unconditionally creates or replaces the profile
	Put(ctx context.Context, profile account.Profile) error

	// Update replaces the profile only if it already exists
	Update(ctx context.Context, profile account.Profile) error
}

// UploadTarget is a presigned upload destination plus the durable URL the
// object will be served from
type UploadTarget struct {
	UploadURL string
	PublicURL string
	Key       string
}

// ImageStore hosts profile images. The reconciliation core treats returned
// URLs as opaque attribute values; only the thumbnail is small enough to
// mirror into the identity provider's picture attribute.
type ImageStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (UploadTarget, error)
	PublicURL(key string) string
}

// Event is an audit event emitted on account activity
type Event struct {
	Type      string                 `json:"type"`
	UserID    string                 `json:"userId,omitempty"`
	Detail    map[string]interface{} `json:"detail,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventPublisher publishes audit events best-effort; failures are logged
// by implementations and never propagated to callers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// BookingRepository stores coaching appointments
type BookingRepository interface {
	Create(ctx context.Context, booking catalog.Booking) error
	GetByID(ctx context.Context, bookingID string) (catalog.Booking, bool, error)
	ListByUser(ctx context.Context, userID string) ([]catalog.Booking, error)
	ListByCoach(ctx context.Context, coachID string) ([]catalog.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status catalog.BookingStatus) error
}

// CourseRepository stores courses offered by coaches
type CourseRepository interface {
	Create(ctx context.Context, course catalog.Course) error
	GetByID(ctx context.Context, courseID string) (catalog.Course, bool, error)
	ListByCoach(ctx context.Context, coachID string) ([]catalog.Course, error)
	Save(ctx context.Context, course catalog.Course) error
}
