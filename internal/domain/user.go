package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Identity is the authenticated caller as seen by the service layer: an
// opaque identifier plus a role. Issued by the auth middleware.
type Identity struct {
	UserID string
	Role   Role
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
