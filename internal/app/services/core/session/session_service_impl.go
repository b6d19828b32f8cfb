package session

import (
	"context"
	"mawaid-service/internal/app/config"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	SessionTTL      time.Duration
}

func NewSessionService(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		SessionTTL:      time.Duration(internalConfig.App.SessionExpirationTimeInMinutes) * time.Minute,
	}
}

func (svc *sessionService) CreateSession(ctx context.Context, user *models.User) (string, error) {
	session := &models.Session{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
	}

	sessionID := uuid.NewString()
	err := svc.RedisRepository.Set(ctx, sessionID, session, svc.SessionTTL)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (svc *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, sessionID)
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}
	if sessionData == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	session := new(models.Session)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) DestroySession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, sessionID)
}
