package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/identado/mongo-identity/domain/shared"
	"github.com/identado/mongo-identity/pkg/logger"
	"github.com/identado/mongo-identity/pkg/mongox"
)

// DefaultTenantID is stamped onto records that reach Update without a tenant.
const DefaultTenantID = "global"

// MongoStore implements Store against a MongoDB collection. The store itself
// is stateless apart from its configuration; concurrent use is safe and
// last-writer-wins on a record is left to the database.
type MongoStore struct {
	coll     *mongo.Collection
	tenantID string
	logger   *logger.Logger
}

// StoreOption configures a MongoStore
type StoreOption func(*MongoStore)

// WithTenantID overrides the default tenant stamped on updates
func WithTenantID(tenantID string) StoreOption {
	return func(s *MongoStore) {
		s.tenantID = tenantID
	}
}

// WithLogger overrides the logger
func WithLogger(log *logger.Logger) StoreOption {
	return func(s *MongoStore) {
		s.logger = log
	}
}

// NewMongoStore creates a user store over the named collection. Database and
// collection names are validated eagerly.
func NewMongoStore(client *mongox.Client, database, collection string, opts ...StoreOption) (*MongoStore, error) {
	if client == nil {
		return nil, shared.ErrInvalidArgument("client cannot be nil")
	}
	if database == "" {
		return nil, shared.ErrInvalidArgument("database name cannot be empty")
	}
	if collection == "" {
		return nil, shared.ErrInvalidArgument("collection name cannot be empty")
	}

	s := &MongoStore{
		coll:     client.Collection(database, collection),
		tenantID: DefaultTenantID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.GetGlobalLogger().WithComponent("user-store")
	}

	return s, nil
}

// Create inserts a new user document. A document with the same id already
// present surfaces as a conflict.
func (s *MongoStore) Create(ctx context.Context, u *User) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}

	_, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shared.WrapConflict(err, "user")
		}
		return shared.WrapUnavailable(err, "create user")
	}

	s.logger.Debug("User document created", zap.String("id", u.ID.String()))
	return nil
}

// Update replaces the stored document with the given record, defaulting the
// tenant tag first if it is unset.
func (s *MongoStore) Update(ctx context.Context, u *User) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}

	if strings.TrimSpace(u.TenantID) == "" {
		u.TenantID = s.tenantID
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return shared.WrapUnavailable(err, "update user")
	}
	if res.MatchedCount == 0 {
		return shared.ErrNotFound("user")
	}

	s.logger.Debug("User document replaced", zap.String("id", u.ID.String()))
	return nil
}

// Delete removes the user's document by id
func (s *MongoStore) Delete(ctx context.Context, u *User) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": u.ID})
	if err != nil {
		return shared.WrapUnavailable(err, "delete user")
	}
	if res.DeletedCount == 0 {
		return shared.ErrNotFound("user")
	}

	s.logger.Debug("User document deleted", zap.String("id", u.ID.String()))
	return nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*User, error) {
	u := &User{}
	err := s.coll.FindOne(ctx, filter).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapUnavailable(err, "find user")
	}
	return u, nil
}

// FindByID returns the user with the given id, or nil when absent
func (s *MongoStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the first user with the given user name, or nil when
// absent. Uniqueness of user names is not enforced at this layer.
func (s *MongoStore) FindByName(ctx context.Context, userName string) (*User, error) {
	return s.findOne(ctx, bson.M{"userName": userName})
}

// FindByEmail returns the first user with the given email, or nil when absent
func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByLogin scans the whole collection for a user holding a matching
// (provider, key) login entry. This is O(n) over the collection and is the
// stock behavior of the framework contract; callers that outgrow it should
// maintain their own index.
func (s *MongoStore) FindByLogin(ctx context.Context, login Login) (*User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, shared.WrapUnavailable(err, "find user by login")
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		u := &User{}
		if err := cursor.Decode(u); err != nil {
			return nil, shared.WrapUnavailable(err, "decode user")
		}
		if u.HasLogin(login) {
			return u, nil
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, shared.WrapUnavailable(err, "find user by login")
	}

	return nil, nil
}

// Users returns a cursor over every user document in the collection
func (s *MongoStore) Users(ctx context.Context) (*mongo.Cursor, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, shared.WrapUnavailable(err, "query users")
	}
	return cursor, nil
}

// SetPasswordHash records the framework-computed password hash in memory
func (s *MongoStore) SetPasswordHash(u *User, hash string) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.PasswordHash = hash
	return nil
}

// PasswordHash returns the stored password hash
func (s *MongoStore) PasswordHash(u *User) (string, error) {
	if u == nil {
		return "", shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.PasswordHash, nil
}

// HasPassword reports whether a non-blank password hash is set
func (s *MongoStore) HasPassword(u *User) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	return strings.TrimSpace(u.PasswordHash) != "", nil
}

// AddToRole appends the role unless a case-insensitive match already exists
func (s *MongoStore) AddToRole(u *User, role string) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	if !containsFold(u.Roles, role) {
		u.AddRole(role)
	}
	return nil
}

// RemoveFromRole removes the role by exact value
func (s *MongoStore) RemoveFromRole(u *User, role string) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.RemoveRole(role)
	return nil
}

// IsInRole reports case-insensitive role membership
func (s *MongoStore) IsInRole(u *User, role string) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	return containsFold(u.Roles, role), nil
}

// Roles returns the live role slice; callers must not assume a copy
func (s *MongoStore) Roles(u *User) ([]string, error) {
	if u == nil {
		return nil, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.Roles, nil
}

// AddLogin appends the login unless the (provider, key) pair already exists
func (s *MongoStore) AddLogin(u *User, login Login) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	if !u.HasLogin(login) {
		u.AddLogin(login)
	}
	return nil
}

// RemoveLogin removes every entry matching the login's (provider, key) pair
func (s *MongoStore) RemoveLogin(u *User, login Login) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.RemoveLogin(login)
	return nil
}

// Logins returns the live login slice; callers must not assume a copy
func (s *MongoStore) Logins(u *User) ([]Login, error) {
	if u == nil {
		return nil, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.Logins, nil
}

// AddClaim appends the claim unless the (type, value) pair already exists
func (s *MongoStore) AddClaim(u *User, claim Claim) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	if !u.HasClaim(claim) {
		u.AddClaim(claim)
	}
	return nil
}

// RemoveClaim removes every entry matching the claim's (type, value) pair
func (s *MongoStore) RemoveClaim(u *User, claim Claim) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.RemoveClaim(claim)
	return nil
}

// Claims projects the stored claim entries into a fresh slice
func (s *MongoStore) Claims(u *User) ([]Claim, error) {
	if u == nil {
		return nil, shared.ErrInvalidArgument("user cannot be nil")
	}
	claims := make([]Claim, len(u.Claims))
	copy(claims, u.Claims)
	return claims, nil
}

// SetSecurityStamp records the framework's security stamp in memory
func (s *MongoStore) SetSecurityStamp(u *User, stamp string) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.SecurityStamp = stamp
	return nil
}

// SecurityStamp returns the stored security stamp
func (s *MongoStore) SecurityStamp(u *User) (string, error) {
	if u == nil {
		return "", shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.SecurityStamp, nil
}

// SetEmail records the email address in memory
func (s *MongoStore) SetEmail(u *User, email string) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.Email = email
	return nil
}

// Email returns the stored email address
func (s *MongoStore) Email(u *User) (string, error) {
	if u == nil {
		return "", shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.Email, nil
}

// SetEmailConfirmed records the email confirmation flag in memory
func (s *MongoStore) SetEmailConfirmed(u *User, confirmed bool) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.EmailConfirmed = confirmed
	return nil
}

// EmailConfirmed returns the email confirmation flag
func (s *MongoStore) EmailConfirmed(u *User) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.EmailConfirmed, nil
}

// SetPhoneNumber records the phone number in memory, without validation
func (s *MongoStore) SetPhoneNumber(u *User, phoneNumber string) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.PhoneNumber = phoneNumber
	return nil
}

// PhoneNumber returns the stored phone number
func (s *MongoStore) PhoneNumber(u *User) (string, error) {
	if u == nil {
		return "", shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.PhoneNumber, nil
}

// SetPhoneNumberConfirmed records the phone confirmation flag in memory
func (s *MongoStore) SetPhoneNumberConfirmed(u *User, confirmed bool) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.PhoneNumberConfirmed = confirmed
	return nil
}

// PhoneNumberConfirmed returns the phone confirmation flag
func (s *MongoStore) PhoneNumberConfirmed(u *User) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.PhoneNumberConfirmed, nil
}

// SetTwoFactorEnabled records the two-factor flag in memory
func (s *MongoStore) SetTwoFactorEnabled(u *User, enabled bool) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.TwoFactorEnabled = enabled
	return nil
}

// TwoFactorEnabled returns the two-factor flag
func (s *MongoStore) TwoFactorEnabled(u *User) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.TwoFactorEnabled, nil
}

// LockoutEndDate returns the lockout end, or the zero time when unset
func (s *MongoStore) LockoutEndDate(u *User) (time.Time, error) {
	if u == nil {
		return time.Time{}, shared.ErrInvalidArgument("user cannot be nil")
	}
	if u.LockoutEndUTC == nil {
		return time.Time{}, nil
	}
	return *u.LockoutEndUTC, nil
}

// SetLockoutEndDate records the lockout end in memory, normalized to UTC
func (s *MongoStore) SetLockoutEndDate(u *User, end time.Time) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	utc := end.UTC()
	u.LockoutEndUTC = &utc
	return nil
}

// IncrementAccessFailedCount bumps the failed-access counter and returns the
// new value
func (s *MongoStore) IncrementAccessFailedCount(u *User) (int, error) {
	if u == nil {
		return 0, shared.ErrInvalidArgument("user cannot be nil")
	}
	u.AccessFailedCount++
	return u.AccessFailedCount, nil
}

// ResetAccessFailedCount zeroes the failed-access counter
func (s *MongoStore) ResetAccessFailedCount(u *User) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.AccessFailedCount = 0
	return nil
}

// AccessFailedCount returns the failed-access counter
func (s *MongoStore) AccessFailedCount(u *User) (int, error) {
	if u == nil {
		return 0, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.AccessFailedCount, nil
}

// LockoutEnabled returns the lockout flag
func (s *MongoStore) LockoutEnabled(u *User) (bool, error) {
	if u == nil {
		return false, shared.ErrInvalidArgument("user cannot be nil")
	}
	return u.LockoutEnabled, nil
}

// SetLockoutEnabled records the lockout flag in memory
func (s *MongoStore) SetLockoutEnabled(u *User, enabled bool) error {
	if u == nil {
		return shared.ErrInvalidArgument("user cannot be nil")
	}
	u.LockoutEnabled = enabled
	return nil
}

// containsFold checks membership under Unicode simple case-folding, which is
// locale-invariant and reproducible across platforms.
func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

var _ Store = (*MongoStore)(nil)
