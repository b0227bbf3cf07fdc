package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. Owner is the elevated capability allowed to force-supersede an
// active float.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleDriver  = "driver"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganisationID string             `bson:"organisation_id" json:"organisationId"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	FirstName      string             `bson:"first_name" json:"firstName" validate:"required"`
	LastName       string             `bson:"last_name" json:"lastName" validate:"required"`
	Password       string             `bson:"password" json:"-"`
	Role           string             `bson:"role" json:"role" validate:"required,oneof=owner manager driver"`
	LastLogin      *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// DisplayName is the label captured onto expenses at creation time.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// AuthUser is the sanitized user shape returned by auth endpoints.
type AuthUser struct {
	ID             string `json:"id"`
	OrganisationID string `json:"organisationId"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           string `json:"role"`
}
