package role

import (
	"context"
)

// Store is the persistence contract the framework expects of a role store
// backend. Lookups return (nil, nil) when no record matches.
type Store interface {
	Create(ctx context.Context, r *Role) error
	Update(ctx context.Context, r *Role) error
	Delete(ctx context.Context, r *Role) error
	FindByID(ctx context.Context, id string) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
}
