package role

import (
	"github.com/identado/mongo-identity/domain/shared"
)

// Role is the persisted role record. The ID doubles as the document key and
// is assigned once at construction; the name may change afterwards.
type Role struct {
	ID   shared.ID `json:"id" bson:"_id"`
	Name string    `json:"name" bson:"name"`
}

// NewRole creates a new role record with a freshly generated id
func NewRole(name string) *Role {
	return &Role{
		ID:   shared.NewID(),
		Name: name,
	}
}
