package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	u := NewUser("alice")

	assert.False(t, u.ID.IsEmpty())
	assert.Equal(t, "alice", u.UserName)
	assert.Empty(t, u.Roles)
	assert.Empty(t, u.Logins)
	assert.Empty(t, u.Claims)
	assert.False(t, u.EmailConfirmed)
	assert.False(t, u.PhoneNumberConfirmed)
	assert.False(t, u.TwoFactorEnabled)
	assert.False(t, u.LockoutEnabled)
	assert.Nil(t, u.LockoutEndUTC)
	assert.Equal(t, 0, u.AccessFailedCount)
}

func TestNewUser_UniqueIDs(t *testing.T) {
	a := NewUser("alice")
	b := NewUser("alice")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestUser_RemoveRole(t *testing.T) {
	t.Run("should remove first exact occurrence only", func(t *testing.T) {
		u := NewUser("alice")
		u.AddRole("Admin")
		u.AddRole("Editor")

		u.RemoveRole("Admin")

		assert.Equal(t, []string{"Editor"}, u.Roles)
	})

	t.Run("should not remove case-insensitive matches", func(t *testing.T) {
		u := NewUser("alice")
		u.AddRole("Admin")

		u.RemoveRole("admin")

		assert.Equal(t, []string{"Admin"}, u.Roles)
	})
}

func TestUser_RemoveLogin(t *testing.T) {
	u := NewUser("alice")
	github := Login{Provider: "github", ProviderKey: "gh-1"}
	google := Login{Provider: "google", ProviderKey: "goo-1"}
	u.AddLogin(github)
	u.AddLogin(google)
	u.AddLogin(github) // model permits duplicates

	u.RemoveLogin(github)

	assert.Equal(t, []Login{google}, u.Logins)
}

func TestUser_RemoveClaim(t *testing.T) {
	u := NewUser("alice")
	dept := Claim{Type: "department", Value: "engineering"}
	region := Claim{Type: "region", Value: "eu"}
	u.AddClaim(dept)
	u.AddClaim(region)

	u.RemoveClaim(dept)

	assert.Equal(t, []Claim{region}, u.Claims)
	assert.False(t, u.HasClaim(dept))
	assert.True(t, u.HasClaim(region))
}

func TestUser_HasLogin(t *testing.T) {
	u := NewUser("alice")
	u.AddLogin(Login{Provider: "github", ProviderKey: "gh-1"})

	assert.True(t, u.HasLogin(Login{Provider: "github", ProviderKey: "gh-1"}))
	assert.False(t, u.HasLogin(Login{Provider: "github", ProviderKey: "gh-2"}))
	assert.False(t, u.HasLogin(Login{Provider: "google", ProviderKey: "gh-1"}))
}
