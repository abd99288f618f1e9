package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identado/mongo-identity/domain/shared"
)

func newTestTokenService() *IdentityTokenService {
	return NewIdentityTokenService("test-secret-key", "mongo-identity-test", time.Hour)
}

func TestIdentityTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService()

	u := NewUser("alice")
	u.SecurityStamp = "stamp-1"
	u.AddRole("Admin")
	u.AddClaim(Claim{Type: "department", Value: "engineering"})

	token, err := svc.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "stamp-1", claims.SecurityStamp)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
	require.Len(t, claims.UserClaims, 1)
	assert.Equal(t, Claim{Type: "department", Value: "engineering"}, claims.UserClaims[0])
}

func TestIdentityTokenService_Issue_NilUser(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.Issue(nil)
	require.Error(t, err)
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestIdentityTokenService_Validate_Errors(t *testing.T) {
	svc := newTestTokenService()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewIdentityTokenService("another-secret", "mongo-identity-test", time.Hour)
		token, err := other.Issue(NewUser("alice"))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewIdentityTokenService("test-secret-key", "mongo-identity-test", -time.Minute)
		token, err := expired.Issue(NewUser("alice"))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.Error(t, err)
	})
}

func TestIdentityTokenService_Refresh(t *testing.T) {
	svc := newTestTokenService()

	u := NewUser("alice")
	u.AddRole("Admin")
	token, err := svc.Issue(u)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(token)
	require.NoError(t, err)

	claims, err := svc.Validate(refreshed)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
}
