package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identado/mongo-identity/domain/shared"
)

// stubUpdater records updates without touching a database
type stubUpdater struct {
	updated []*User
	err     error
}

func (s *stubUpdater) Update(ctx context.Context, u *User) error {
	if s.err != nil {
		return s.err
	}
	s.updated = append(s.updated, u)
	return nil
}

// stubPasswordUpdater additionally satisfies PasswordStore
type stubPasswordUpdater struct {
	stubUpdater
}

func (s *stubPasswordUpdater) SetPasswordHash(u *User, hash string) error { return nil }
func (s *stubPasswordUpdater) PasswordHash(u *User) (string, error)       { return "", nil }
func (s *stubPasswordUpdater) HasPassword(u *User) (bool, error)          { return false, nil }

func TestNewResetTokenProvider(t *testing.T) {
	_, err := NewResetTokenProvider(nil)
	require.Error(t, err)
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestResetTokenProvider_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("should store and return a fresh token", func(t *testing.T) {
		store := &stubUpdater{}
		provider, err := NewResetTokenProvider(store)
		require.NoError(t, err)

		u := NewUser("alice")
		token, err := provider.Generate(ctx, u)
		require.NoError(t, err)

		assert.NotEmpty(t, token)
		assert.Equal(t, token, u.PasswordResetToken)
		require.Len(t, store.updated, 1)
		assert.Same(t, u, store.updated[0])
	})

	t.Run("should issue a different token each time", func(t *testing.T) {
		store := &stubUpdater{}
		provider, err := NewResetTokenProvider(store)
		require.NoError(t, err)

		u := NewUser("alice")
		first, err := provider.Generate(ctx, u)
		require.NoError(t, err)
		second, err := provider.Generate(ctx, u)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, second, u.PasswordResetToken)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		store := &stubUpdater{err: shared.ErrNotFound("user")}
		provider, err := NewResetTokenProvider(store)
		require.NoError(t, err)

		_, err = provider.Generate(ctx, NewUser("alice"))
		require.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("should reject nil user", func(t *testing.T) {
		provider, err := NewResetTokenProvider(&stubUpdater{})
		require.NoError(t, err)

		_, err = provider.Generate(ctx, nil)
		require.Error(t, err)
		assert.True(t, shared.IsInvalidArgument(err))
	})
}

func TestResetTokenProvider_Validate(t *testing.T) {
	provider, err := NewResetTokenProvider(&stubUpdater{})
	require.NoError(t, err)

	u := NewUser("alice")
	token, err := provider.Generate(context.Background(), u)
	require.NoError(t, err)

	ok, err := provider.Validate(token, u)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = provider.Validate("wrong", u)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetTokenProvider_IsValidFor(t *testing.T) {
	u := NewUser("alice")

	t.Run("true when the store manages passwords", func(t *testing.T) {
		provider, err := NewResetTokenProvider(&stubPasswordUpdater{})
		require.NoError(t, err)

		ok, err := provider.IsValidFor(u)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("false otherwise", func(t *testing.T) {
		provider, err := NewResetTokenProvider(&stubUpdater{})
		require.NoError(t, err)

		ok, err := provider.IsValidFor(u)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestResetTokenProvider_Notify(t *testing.T) {
	provider, err := NewResetTokenProvider(&stubUpdater{})
	require.NoError(t, err)

	// Delivery is out of scope; Notify must be a silent no-op
	assert.NoError(t, provider.Notify(context.Background(), "token", NewUser("alice")))
}
