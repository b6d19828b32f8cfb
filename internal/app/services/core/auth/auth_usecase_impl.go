package auth

import (
	"context"
	"mawaid-service/internal/app/config"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/app/services/core/users"
	"mawaid-service/internal/pkg/constvars"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/dto/responses"
	"mawaid-service/internal/pkg/exceptions"
	"mawaid-service/internal/pkg/utils"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository contracts.UserRepository
	SessionService contracts.SessionService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		instance := &authUsecase{
			UserRepository: userRepository,
			SessionService: sessionService,
			InternalConfig: internalConfig,
			Log:            logger,
		}
		authUsecaseInstance = instance
	})
	return authUsecaseInstance
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.Register, error) {
	existing, err := uc.UserRepository.FindUserByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	role := request.Role
	if role == "" {
		role = constvars.RoleTypeUser
	}
	if role == constvars.RoleTypeSuperAdmin {
		count, err := uc.UserRepository.CountUsersByRole(ctx, constvars.RoleTypeSuperAdmin)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, exceptions.ErrSuperAdminAlreadyExist(nil)
		}
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        request.Email,
		Password:     hashedPassword,
		Name:         request.Name,
		Phone:        request.Phone,
		Gender:       request.Gender,
		Role:         role,
		Appointments: []primitive.ObjectID{},
		Groups:       []primitive.ObjectID{},
	}
	user.SetCreatedAtUpdatedAt()

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Register created user",
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return &responses.Register{
		UserID: userID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.Login, error) {
	user, err := uc.UserRepository.FindUserByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	sessionID, err := uc.SessionService.CreateSession(ctx, user)
	if err != nil {
		return nil, err
	}

	expTime := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	token, err := utils.GenerateJWT(sessionID, uc.InternalConfig.JWT.Secret, expTime)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	return &responses.Login{
		Token: token,
		User:  users.NewUserProfileResponse(user),
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, sessionID string) error {
	return uc.SessionService.DestroySession(ctx, sessionID)
}
