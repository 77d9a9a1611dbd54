package account

import pkgerrors "pathshala-backend/pkg/errors"

// Role is the account type assigned at registration. It is stored as an
// immutable custom claim on the identity provider and never changes after
// sign-up confirmation.
type Role string

const (
	RoleStudent Role = "student"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

// DefaultRole is assigned when a profile is lazily created without a
// role claim on the identity.
const DefaultRole = RoleStudent

// ParseRole validates a role string
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleCoach, RoleAdmin:
		return Role(s), nil
	}
	return "", pkgerrors.NewValidationError("role must be one of: student, coach, admin")
}

// Identity represents an authenticated principal as reported by the
// identity provider. The ID is the token subject claim, assigned by the
// provider and immutable.
type Identity struct {
	ID      string
	Email   string
	Name    string
	Phone   string
	Picture string
	Role    Role
	Claims  map[string]string
}

// ClaimUserType is the custom claim carrying the account role
const ClaimUserType = "custom:userType"
