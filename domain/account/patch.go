package account

import (
	"bytes"
	"encoding/json"
	"time"

	"pathshala-backend/pkg/utils"
)

// OptionalString is a three-state field for attribute updates: a key that
// is absent from the request means "keep", an explicit null means "clear",
// and a value means "set". This replaces the source system's ambiguous
// "undefined means no-op" convention.
type OptionalString struct {
	Present bool
	Valid   bool
	Value   string
}

// Set returns an OptionalString carrying a value
func Set(v string) OptionalString {
	return OptionalString{Present: true, Valid: true, Value: v}
}

// Clear returns an OptionalString that clears the field
func Clear() OptionalString {
	return OptionalString{Present: true}
}

// UnmarshalJSON implements three-state decoding. It is only invoked for
// keys present in the document, so Present is always true here.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		o.Value = ""
		return nil
	}
	o.Valid = true
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON encodes the field value or null
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// apply overwrites target according to the field's state
func (o OptionalString) apply(target *string) {
	if !o.Present {
		return
	}
	if o.Valid {
		*target = o.Value
	} else {
		*target = ""
	}
}

// Patch is a partial attribute update. Identity-recognized fields are
// forwarded to the identity provider; everything else only touches the
// profile store.
type Patch struct {
	Email   OptionalString `json:"email,omitzero"`
	Name    OptionalString `json:"name,omitzero"`
	Phone   OptionalString `json:"phone,omitzero"`
	Picture OptionalString `json:"picture,omitzero"`
	Claims  map[string]string `json:"claims,omitempty"`

	Bio         OptionalString    `json:"bio,omitzero"`
	Interests   []string          `json:"interests,omitempty"`
	Address     *Address          `json:"address,omitempty"`
	Education   *Education        `json:"education,omitempty"`
	SocialLinks *SocialLinks      `json:"socialLinks,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// IdentityAttributes returns the provider-recognized attributes present in
// the patch, keyed by the provider's attribute names. Cleared fields map to
// an empty value, matching the provider's clear semantics.
func (p Patch) IdentityAttributes() map[string]string {
	attrs := make(map[string]string)
	add := func(name string, o OptionalString) {
		if o.Present {
			attrs[name] = o.Value
		}
	}
	add("email", p.Email)
	add("name", p.Name)
	add("phone_number", p.Phone)
	add("picture", p.Picture)
	for k, v := range p.Claims {
		attrs[k] = v
	}
	return attrs
}

// HasIdentityAttributes reports whether the patch carries any
// provider-recognized fields
func (p Patch) HasIdentityAttributes() bool {
	return len(p.IdentityAttributes()) > 0
}

// Apply merges the patch into the profile, field-level overwrite with
// last-writer-wins semantics, and stamps the update timestamp.
func (p Patch) Apply(profile *Profile, now time.Time) {
	p.Email.apply(&profile.Email)
	p.Name.apply(&profile.Name)
	p.Phone.apply(&profile.Phone)
	p.Picture.apply(&profile.Picture)
	p.Bio.apply(&profile.Bio)

	if p.Interests != nil {
		profile.Interests = p.Interests
	}
	if p.Address != nil {
		profile.Address = p.Address
	}
	if p.Education != nil {
		profile.Education = p.Education
	}
	if p.SocialLinks != nil {
		profile.SocialLinks = p.SocialLinks
	}
	if p.Preferences != nil {
		profile.Preferences = p.Preferences
	}
	for k, v := range p.Extra {
		if profile.Extra == nil {
			profile.Extra = make(map[string]string)
		}
		profile.Extra[k] = v
	}

	profile.UpdatedAt = utils.FormatRFC3339(now)
}
