package contracts

import (
	"context"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/dto/responses"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, session *models.Session) (*responses.UserProfile, error)
	UpdateProfile(ctx context.Context, session *models.Session, request *requests.UpdateProfile) (*responses.UserProfile, error)
	Delete(ctx context.Context, session *models.Session) error
	FindAll(ctx context.Context) ([]responses.UserProfile, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	FindUserByID(ctx context.Context, userID string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SetUserRole(ctx context.Context, userID, role string) error
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	AddAppointmentToUser(ctx context.Context, userID, appointmentID string) error
	RemoveAppointmentFromUsers(ctx context.Context, userIDs []string, appointmentID string) error
	AddGroupToUsers(ctx context.Context, userIDs []string, groupID string) error
	RemoveGroupFromUsers(ctx context.Context, userIDs []string, groupID string) error
	DeleteUserByID(ctx context.Context, userID string) error
}
