package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the privilege tier attached to a user record.
type Role string

const (
	RoleNone  Role = "none"
	RoleAdmin Role = "admin"
)

// Admin reports whether the role unlocks privileged operations.
// The zero value (absent field in older documents) counts as RoleNone.
func (r Role) Admin() bool {
	return r == RoleAdmin
}

// User is a directory record keyed by email. Created on first registration;
// the role is only ever changed by an explicit promotion.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never serialised
	Role     Role               `bson:"role,omitempty" json:"role,omitempty"`
}
