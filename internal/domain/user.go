package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Membership is a user's current plan enrollment. It is embedded in the
// User document and only meaningful for users with RoleMember.
type Membership struct {
	Plan      *primitive.ObjectID `bson:"plan,omitempty" json:"plan,omitempty"` // Reference to a Plan
	StartDate *time.Time          `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time          `bson:"endDate,omitempty" json:"endDate,omitempty"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
}

// User represents a user in the system (Member, Trainer or Admin).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`      // Immutable after creation
	Membership   Membership         `bson:"membership" json:"membership"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsMember() bool {
	return u.Role == RoleMember
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
