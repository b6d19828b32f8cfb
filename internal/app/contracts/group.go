package contracts

import (
	"context"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/dto/responses"
)

type GroupUsecase interface {
	Create(ctx context.Context, request *requests.CreateGroup) (*responses.Group, error)
	FindForUser(ctx context.Context, session *models.Session) ([]responses.Group, error)
	Update(ctx context.Context, groupID string, request *requests.UpdateGroup) (*responses.Group, error)
	Delete(ctx context.Context, groupID string) error
	GetAdmin(ctx context.Context, groupID string) (*responses.UserProfile, error)
	ReassignAdmin(ctx context.Context, groupID string, session *models.Session, request *requests.ReassignGroupAdmin) (*responses.Group, error)
	GetMembers(ctx context.Context, groupID string) ([]responses.UserProfile, error)
	AddMembers(ctx context.Context, groupID string, session *models.Session, request *requests.ChangeGroupMembers) (*responses.Group, error)
	RemoveMembers(ctx context.Context, groupID string, session *models.Session, request *requests.ChangeGroupMembers) (*responses.Group, error)
	GetAppointments(ctx context.Context, groupID string) ([]responses.Appointment, error)
}

type GroupRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) (string, error)
	FindGroupByID(ctx context.Context, groupID string) (*models.Group, error)
	FindGroupsForUser(ctx context.Context, userID string) ([]models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	SetGroupAdmin(ctx context.Context, groupID, adminID string) error
	AddGroupMembers(ctx context.Context, groupID string, memberIDs []string) error
	RemoveGroupMembers(ctx context.Context, groupID string, memberIDs []string) error
	AddAppointmentToGroups(ctx context.Context, groupIDs []string, appointmentID string) error
	RemoveAppointmentFromGroups(ctx context.Context, groupIDs []string, appointmentID string) error
	// HasOtherGroupWithAdmin reports whether adminID still administers any
	// group besides excludeGroupID.
	HasOtherGroupWithAdmin(ctx context.Context, excludeGroupID, adminID string) (bool, error)
	DeleteGroupByID(ctx context.Context, groupID string) error
}
