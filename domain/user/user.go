package user

import (
	"time"

	"github.com/identado/mongo-identity/domain/shared"
)

// Login identifies an association between a user and an external
// authentication provider.
type Login struct {
	Provider    string `json:"loginProvider" bson:"loginProvider"`
	ProviderKey string `json:"providerKey" bson:"providerKey"`
}

// Claim is a (type, value) pair asserting a fact about a user, consumed by
// the identity framework's authorization logic.
type Claim struct {
	Type  string `json:"type" bson:"type"`
	Value string `json:"value" bson:"value"`
}

// User is the persisted user record. The ID doubles as the document key and
// is assigned once at construction. The model itself permits duplicate roles,
// logins and claims; de-duplication is the store's responsibility.
type User struct {
	ID                   shared.ID  `json:"id" bson:"_id"`
	UserName             string     `json:"userName" bson:"userName"`
	PasswordHash         string     `json:"passwordHash,omitempty" bson:"passwordHash,omitempty"`
	SecurityStamp        string     `json:"securityStamp,omitempty" bson:"securityStamp,omitempty"`
	Email                string     `json:"email,omitempty" bson:"email,omitempty"`
	EmailConfirmed       bool       `json:"emailConfirmed" bson:"emailConfirmed"`
	PhoneNumber          string     `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	PhoneNumberConfirmed bool       `json:"phoneNumberConfirmed" bson:"phoneNumberConfirmed"`
	TwoFactorEnabled     bool       `json:"twoFactorEnabled" bson:"twoFactorEnabled"`
	LockoutEndUTC        *time.Time `json:"lockoutEndUtc,omitempty" bson:"lockoutEndUtc,omitempty"`
	LockoutEnabled       bool       `json:"lockoutEnabled" bson:"lockoutEnabled"`
	AccessFailedCount    int        `json:"accessFailedCount" bson:"accessFailedCount"`
	Roles                []string   `json:"roles" bson:"roles"`
	Logins               []Login    `json:"logins" bson:"logins"`
	Claims               []Claim    `json:"claims" bson:"claims"`
	TenantID             string     `json:"tenantId,omitempty" bson:"tenantId,omitempty"`
	PasswordResetToken   string     `json:"passwordResetToken,omitempty" bson:"passwordResetToken,omitempty"`
}

// NewUser creates a new user record with a freshly generated id
func NewUser(userName string) *User {
	return &User{
		ID:       shared.NewID(),
		UserName: userName,
		Roles:    []string{},
		Logins:   []Login{},
		Claims:   []Claim{},
	}
}

// AddRole appends a role name
func (u *User) AddRole(role string) {
	u.Roles = append(u.Roles, role)
}

// RemoveRole removes the first exact occurrence of a role name
func (u *User) RemoveRole(role string) {
	for i, r := range u.Roles {
		if r == role {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return
		}
	}
}

// AddLogin appends an external login association
func (u *User) AddLogin(login Login) {
	u.Logins = append(u.Logins, login)
}

// RemoveLogin removes every entry matching the login's (provider, key) pair
func (u *User) RemoveLogin(login Login) {
	kept := u.Logins[:0]
	for _, l := range u.Logins {
		if l.Provider != login.Provider || l.ProviderKey != login.ProviderKey {
			kept = append(kept, l)
		}
	}
	u.Logins = kept
}

// AddClaim appends a claim
func (u *User) AddClaim(claim Claim) {
	u.Claims = append(u.Claims, claim)
}

// RemoveClaim removes every entry matching the claim's (type, value) pair
func (u *User) RemoveClaim(claim Claim) {
	kept := u.Claims[:0]
	for _, c := range u.Claims {
		if c.Type != claim.Type || c.Value != claim.Value {
			kept = append(kept, c)
		}
	}
	u.Claims = kept
}

// HasLogin reports whether an entry with the same (provider, key) pair exists
func (u *User) HasLogin(login Login) bool {
	for _, l := range u.Logins {
		if l.Provider == login.Provider && l.ProviderKey == login.ProviderKey {
			return true
		}
	}
	return false
}

// HasClaim reports whether an entry with the same (type, value) pair exists
func (u *User) HasClaim(claim Claim) bool {
	for _, c := range u.Claims {
		if c.Type == claim.Type && c.Value == claim.Value {
			return true
		}
	}
	return false
}
