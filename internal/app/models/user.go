package models

import (
	"mawaid-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Email        string               `bson:"email"`
	Password     string               `bson:"password"`
	Name         string               `bson:"name"`
	Phone        string               `bson:"phone,omitempty"`
	Gender       string               `bson:"gender"`
	Role         string               `bson:"role"`
	ProfilePic   string               `bson:"profilePic,omitempty"`
	Appointments []primitive.ObjectID `bson:"appointments"`
	Groups       []primitive.ObjectID `bson:"groups"`
	TimeModel    `bson:",inline"`
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == constvars.RoleTypeSuperAdmin
}

func (u *User) IsAdmin() bool {
	return u.Role == constvars.RoleTypeAdmin
}

// Session is the decoded caller identity attached to every authenticated
// request after token verification.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (s *Session) HasRole(roles ...string) bool {
	for _, role := range roles {
		if s.Role == role {
			return true
		}
	}
	return false
}
