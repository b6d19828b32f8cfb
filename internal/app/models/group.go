package models

import (
	"mawaid-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Group struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name"`
	Description  string               `bson:"description,omitempty"`
	GroupPic     string               `bson:"groupPic,omitempty"`
	Admin        primitive.ObjectID   `bson:"admin"`
	Members      []primitive.ObjectID `bson:"members"`
	Appointments []primitive.ObjectID `bson:"appointments"`
	TimeModel    `bson:",inline"`
}

func (g *Group) HasMember(userID primitive.ObjectID) bool {
	for _, member := range g.Members {
		if member == userID {
			return true
		}
	}
	return false
}

// CanAdministerGroup reports whether the caller may act as an admin of the
// group: super admins and global admins always may, otherwise the caller must
// be the group's own admin.
func CanAdministerGroup(session *Session, group *Group) bool {
	return session.Role == constvars.RoleTypeSuperAdmin ||
		group.Admin.Hex() == session.UserID ||
		session.Role == constvars.RoleTypeAdmin
}

// CanReassignGroupAdmin is stricter than CanAdministerGroup: only a super
// admin or the current group admin may hand the group to someone else.
func CanReassignGroupAdmin(session *Session, group *Group) bool {
	return session.Role == constvars.RoleTypeSuperAdmin ||
		group.Admin.Hex() == session.UserID
}
