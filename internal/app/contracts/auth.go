package contracts

import (
	"context"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.Register, error)
	Login(ctx context.Context, request *requests.LoginUser) (*responses.Login, error)
	Logout(ctx context.Context, sessionID string) error
}

type SessionService interface {
	CreateSession(ctx context.Context, user *models.User) (string, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DestroySession(ctx context.Context, sessionID string) error
}
