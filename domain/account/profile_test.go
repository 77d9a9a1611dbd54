package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProfile_DefaultsRole(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := NewProfile("user-1", "a@b.com", "", now)

	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, RoleStudent, p.Role)
	assert.Equal(t, "2025-06-01T12:00:00Z", p.CreatedAt)
	assert.Equal(t, p.CreatedAt, p.LastLogin)
}

func TestMergeIdentity_ProviderWinsWhenNonEmpty(t *testing.T) {
	stored := Profile{
		UserID:  "user-1",
		Email:   "old@b.com",
		Name:    "Old",
		Phone:   "+911234567890",
		Picture: "https://img/a.jpg",
		Bio:     "untouched",
		Role:    RoleStudent,
	}

	merged := stored.MergeIdentity(Identity{
		Email: "new@b.com",
		Name:  "New",
		// Phone and Picture absent at the provider
	})

	assert.Equal(t, "new@b.com", merged.Email)
	assert.Equal(t, "New", merged.Name)
	assert.Equal(t, "+911234567890", merged.Phone)
	assert.Equal(t, "https://img/a.jpg", merged.Picture)
	assert.Equal(t, "untouched", merged.Bio)
	assert.Equal(t, RoleStudent, merged.Role)
}

func TestMergeIdentity_EmptyIdentityChangesNothing(t *testing.T) {
	stored := Profile{UserID: "user-1", Email: "a@b.com", Name: "Asha"}

	merged := stored.MergeIdentity(Identity{})

	assert.True(t, merged.Equal(stored))
}

func TestEqual_DetectsDeepChanges(t *testing.T) {
	a := Profile{UserID: "u", Interests: []string{"math"}, Preferences: map[string]string{"lang": "hi"}}
	b := Profile{UserID: "u", Interests: []string{"math"}, Preferences: map[string]string{"lang": "hi"}}

	assert.True(t, a.Equal(b))

	b.Preferences["lang"] = "en"
	assert.False(t, a.Equal(b))
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"student", "coach", "admin"} {
		role, err := ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
}
