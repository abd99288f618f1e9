package user

import (
	"context"
	"time"
)

// The identity framework dispatches against many narrow capability surfaces.
// Each is kept as a small interface and composed into Store, so a backend can
// implement the full set without exposing one monolithic contract.
//
// Only Create, Update and Delete touch the document database. Every other
// mutating operation changes the in-memory record and leaves persistence to a
// later Update call; the framework batches mutations that way.

// CrudStore covers create, replace, delete and the lookup operations.
// Lookups return (nil, nil) when no record matches; absence is a signal, not
// a failure.
type CrudStore interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByName(ctx context.Context, userName string) (*User, error)
}

// PasswordStore manages the stored password hash. Hashing itself is owned by
// the calling framework.
type PasswordStore interface {
	SetPasswordHash(u *User, hash string) error
	PasswordHash(u *User) (string, error)
	HasPassword(u *User) (bool, error)
}

// RoleStore manages role membership on the user record. Membership checks
// and de-duplication are case-insensitive under Unicode simple folding.
type RoleStore interface {
	AddToRole(u *User, role string) error
	RemoveFromRole(u *User, role string) error
	IsInRole(u *User, role string) (bool, error)
	Roles(u *User) ([]string, error)
}

// LoginStore manages external login associations, unique by
// (provider, provider key).
type LoginStore interface {
	AddLogin(u *User, login Login) error
	RemoveLogin(u *User, login Login) error
	Logins(u *User) ([]Login, error)
	FindByLogin(ctx context.Context, login Login) (*User, error)
}

// ClaimStore manages user claims, unique by (type, value).
type ClaimStore interface {
	AddClaim(u *User, claim Claim) error
	RemoveClaim(u *User, claim Claim) error
	Claims(u *User) ([]Claim, error)
}

// SecurityStampStore manages the opaque stamp the framework uses to detect
// stale sign-in sessions.
type SecurityStampStore interface {
	SetSecurityStamp(u *User, stamp string) error
	SecurityStamp(u *User) (string, error)
}

// EmailStore manages the email address and its confirmation flag.
type EmailStore interface {
	SetEmail(u *User, email string) error
	Email(u *User) (string, error)
	SetEmailConfirmed(u *User, confirmed bool) error
	EmailConfirmed(u *User) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// PhoneNumberStore manages the phone number and its confirmation flag.
type PhoneNumberStore interface {
	SetPhoneNumber(u *User, phoneNumber string) error
	PhoneNumber(u *User) (string, error)
	SetPhoneNumberConfirmed(u *User, confirmed bool) error
	PhoneNumberConfirmed(u *User) (bool, error)
}

// TwoFactorStore manages the two-factor flag.
type TwoFactorStore interface {
	SetTwoFactorEnabled(u *User, enabled bool) error
	TwoFactorEnabled(u *User) (bool, error)
}

// LockoutStore manages the lockout window and the failed-access counter.
type LockoutStore interface {
	LockoutEndDate(u *User) (time.Time, error)
	SetLockoutEndDate(u *User, end time.Time) error
	IncrementAccessFailedCount(u *User) (int, error)
	ResetAccessFailedCount(u *User) error
	AccessFailedCount(u *User) (int, error)
	LockoutEnabled(u *User) (bool, error)
	SetLockoutEnabled(u *User, enabled bool) error
}

// Store is the full persistence contract the framework expects of a user
// store backend.
type Store interface {
	CrudStore
	PasswordStore
	RoleStore
	LoginStore
	ClaimStore
	SecurityStampStore
	EmailStore
	PhoneNumberStore
	TwoFactorStore
	LockoutStore
}
