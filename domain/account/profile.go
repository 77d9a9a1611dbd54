package account

import (
	"reflect"
	"time"

	"pathshala-backend/pkg/utils"
)

// Address is the postal address section of a profile
type Address struct {
	Street     string `json:"street,omitempty" dynamodbav:"street,omitempty"`
	City       string `json:"city,omitempty" dynamodbav:"city,omitempty"`
	State      string `json:"state,omitempty" dynamodbav:"state,omitempty"`
	Country    string `json:"country,omitempty" dynamodbav:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty" dynamodbav:"postalCode,omitempty"`
}

// Education is the education section of a profile
type Education struct {
	CurrentLevel   string `json:"currentLevel,omitempty" dynamodbav:"currentLevel,omitempty"`
	School         string `json:"school,omitempty" dynamodbav:"school,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty" dynamodbav:"graduationYear,omitempty"`
	Major          string `json:"major,omitempty" dynamodbav:"major,omitempty"`
	GPA            string `json:"gpa,omitempty" dynamodbav:"gpa,omitempty"`
}

// SocialLinks holds optional social profile URLs
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty" dynamodbav:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty" dynamodbav:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty" dynamodbav:"github,omitempty"`
}

// Profile is the extended mutable record for a user, keyed by the same
// stable identifier as the identity. Identity-mirrored fields (email, name,
// phone, picture) are cached copies; the identity provider's values take
// precedence during reconciliation. Everything else is profile-only.
type Profile struct {
	UserID  string `json:"userId" dynamodbav:"userId"`
	Email   string `json:"email" dynamodbav:"email"`
	Name    string `json:"name,omitempty" dynamodbav:"name,omitempty"`
	Phone   string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Picture string `json:"picture,omitempty" dynamodbav:"picture,omitempty"`
	Role    Role   `json:"role,omitempty" dynamodbav:"role,omitempty"`

	CreatedAt string `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`
	LastLogin string `json:"lastLogin,omitempty" dynamodbav:"lastLogin,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`

	Bio         string            `json:"bio,omitempty" dynamodbav:"bio,omitempty"`
	Interests   []string          `json:"interests,omitempty" dynamodbav:"interests,omitempty"`
	Address     *Address          `json:"address,omitempty" dynamodbav:"address,omitempty"`
	Education   *Education        `json:"education,omitempty" dynamodbav:"education,omitempty"`
	SocialLinks *SocialLinks      `json:"socialLinks,omitempty" dynamodbav:"socialLinks,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty" dynamodbav:"preferences,omitempty"`

	// Extra is the open extension bag for fields outside the core schema
	Extra map[string]string `json:"extra,omitempty" dynamodbav:"extra,omitempty"`
}

// NewProfile creates the initial profile record for a first sign-in.
// This is the only path that creates a profile; registration defers
// creation until the first successful authentication.
func NewProfile(userID, email string, role Role, now time.Time) Profile {
	if role == "" {
		role = DefaultRole
	}
	ts := utils.FormatRFC3339(now)
	return Profile{
		UserID:    userID,
		Email:     email,
		Role:      role,
		CreatedAt: ts,
		LastLogin: ts,
	}
}

// MergeIdentity overlays identity-provider attributes onto the profile.
// A provider value wins only when present and non-empty; otherwise the
// stored value is retained. Profile-only fields pass through unchanged.
func (p Profile) MergeIdentity(id Identity) Profile {
	merged := p
	if id.Email != "" {
		merged.Email = id.Email
	}
	if id.Name != "" {
		merged.Name = id.Name
	}
	if id.Phone != "" {
		merged.Phone = id.Phone
	}
	if id.Picture != "" {
		merged.Picture = id.Picture
	}
	if id.Role != "" {
		merged.Role = id.Role
	}
	return merged
}

// TouchLastLogin stamps the last-login timestamp
func (p *Profile) TouchLastLogin(now time.Time) {
	p.LastLogin = utils.FormatRFC3339(now)
}

// Equal reports structural equality, used for the dirty check before
// writing a merged profile back to the store.
func (p Profile) Equal(other Profile) bool {
	return reflect.DeepEqual(p, other)
}
