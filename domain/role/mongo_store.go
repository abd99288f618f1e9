package role

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/identado/mongo-identity/domain/shared"
	"github.com/identado/mongo-identity/pkg/logger"
	"github.com/identado/mongo-identity/pkg/mongox"
)

// MongoStore implements Store against a MongoDB collection
type MongoStore struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

// StoreOption configures a MongoStore
type StoreOption func(*MongoStore)

// WithLogger overrides the logger
func WithLogger(log *logger.Logger) StoreOption {
	return func(s *MongoStore) {
		s.logger = log
	}
}

// NewMongoStore creates a role store over the named collection. Database and
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
		coll: client.Collection(database, collection),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.GetGlobalLogger().WithComponent("role-store")
	}

	return s, nil
}

// Create inserts a new role document. A document with the same id already
// present surfaces as a conflict.
func (s *MongoStore) Create(ctx context.Context, r *Role) error {
	if r == nil {
		return shared.ErrInvalidArgument("role cannot be nil")
	}

	_, err := s.coll.InsertOne(ctx, r)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shared.WrapConflict(err, "role")
		}
		return shared.WrapUnavailable(err, "create role")
	}

	s.logger.Debug("Role document created", zap.String("id", r.ID.String()))
	return nil
}

// Update replaces the stored document with the given record
func (s *MongoStore) Update(ctx context.Context, r *Role) error {
	if r == nil {
		return shared.ErrInvalidArgument("role cannot be nil")
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	if err != nil {
		return shared.WrapUnavailable(err, "update role")
	}
	if res.MatchedCount == 0 {
		return shared.ErrNotFound("role")
	}

	s.logger.Debug("Role document replaced", zap.String("id", r.ID.String()))
	return nil
}

// Delete removes the role's document by id
func (s *MongoStore) Delete(ctx context.Context, r *Role) error {
	if r == nil {
		return shared.ErrInvalidArgument("role cannot be nil")
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": r.ID})
	if err != nil {
		return shared.WrapUnavailable(err, "delete role")
	}
	if res.DeletedCount == 0 {
		return shared.ErrNotFound("role")
	}

	s.logger.Debug("Role document deleted", zap.String("id", r.ID.String()))
	return nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Role, error) {
	r := &Role{}
	err := s.coll.FindOne(ctx, filter).Decode(r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapUnavailable(err, "find role")
	}
	return r, nil
}

// FindByID returns the role with the given id, or nil when absent
func (s *MongoStore) FindByID(ctx context.Context, id string) (*Role, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the role with the given name, or nil when absent.
// The match is case-sensitive and exact.
func (s *MongoStore) FindByName(ctx context.Context, name string) (*Role, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

// Roles returns a cursor over every role document in the collection
func (s *MongoStore) Roles(ctx context.Context) (*mongo.Cursor, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, shared.WrapUnavailable(err, "query roles")
	}
	return cursor, nil
}

var _ Store = (*MongoStore)(nil)
