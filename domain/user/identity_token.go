package user

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/identado/mongo-identity/domain/shared"
)

// IdentityClaims is the signed representation of a user record handed to the
// authentication layer: subject, username, security stamp, role memberships
// and the user's custom claims.
type IdentityClaims struct {
	Username      string   `json:"username"`
	SecurityStamp string   `json:"security_stamp,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	UserClaims    []Claim  `json:"user_claims,omitempty"`
	jwt.RegisteredClaims
}

// IdentityTokenService converts user records into signed identity tokens
type IdentityTokenService struct {
	secretKey      []byte
	issuer         string
	expiryDuration time.Duration
}

// NewIdentityTokenService creates a new identity token service
func NewIdentityTokenService(secretKey string, issuer string, expiryDuration time.Duration) *IdentityTokenService {
	return &IdentityTokenService{
		secretKey:      []byte(secretKey),
		issuer:         issuer,
		expiryDuration: expiryDuration,
	}
}

// Issue generates a signed identity token for a user
func (s *IdentityTokenService) Issue(u *User) (string, error) {
	if u == nil {
		return "", shared.ErrInvalidArgument("user cannot be nil")
	}

	now := time.Now()
	claims := IdentityClaims{
		Username:      u.UserName,
		SecurityStamp: u.SecurityStamp,
		Roles:         u.Roles,
		UserClaims:    u.Claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiryDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate validates an identity token and returns the claims
func (s *IdentityTokenService) Validate(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// Refresh creates a new token with extended expiry
func (s *IdentityTokenService) Refresh(tokenString string) (string, error) {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return "", err
	}

	now := time.Now()
	newClaims := IdentityClaims{
		Username:      claims.Username,
		SecurityStamp: claims.SecurityStamp,
		Roles:         claims.Roles,
		UserClaims:    claims.UserClaims,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiryDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	return token.SignedString(s.secretKey)
}
