package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/identado/mongo-identity/domain/shared"
)

// Updater is the persistence surface the token provider needs
type Updater interface {
	Update(ctx context.Context, u *User) error
}

// ResetTokenProvider issues and checks single-use password-reset tokens. The
// token lives on the user record itself, so issuing persists the record
// through the store.
type ResetTokenProvider struct {
	store Updater
}

// NewResetTokenProvider creates a token provider backed by the given store
func NewResetTokenProvider(store Updater) (*ResetTokenProvider, error) {
	if store == nil {
		return nil, shared.ErrInvalidArgument("store cannot be nil")
	}
	return &ResetTokenProvider{store: store}, nil
}

// Generate creates a fresh token, records it on the user and persists the
// record. The token is returned to the caller for delivery.
func (p *ResetTokenProvider) Generate(ctx context.Context, u *User) (string, error) {
	if u == nil {
		return "", shared.ErrInvalidArgument("user cannot be nil")
	}

	token := uuid.New().String()
	u.PasswordResetToken = token

	if err := p.store.Update(ctx, u); err != nil {
		return "", err
	}

	return token, nil
}

// Validate reports whether the presented token matches the stored one
func (p *ResetTokenProvider) Validate(token string, u *User) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.PasswordResetToken == token, nil
}

// IsValidFor reports whether password-based reset is supported for the user,
// which holds when the backing store manages password hashes.
func (p *ResetTokenProvider) IsValidFor(u *User) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	_, ok := p.store.(PasswordStore)
	return ok, nil
}

// Notify is a no-op; token delivery (email, SMS) is out of scope here
func (p *ResetTokenProvider) Notify(ctx context.Context, token string, u *User) error {
	return nil
}
