package auth

import (
	"context"
	"mawaid-service/internal/app/config"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/constvars"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/exceptions"
	"mawaid-service/internal/pkg/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeUserRepository struct {
	contracts.UserRepository

	usersByEmail    map[string]*models.User
	superAdminCount int64
	created         *models.User
}

func (f *fakeUserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.usersByEmail[email], nil
}

func (f *fakeUserRepository) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	return f.superAdminCount, nil
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	f.created = user
	return primitive.NewObjectID().Hex(), nil
}

type fakeSessionService struct {
	sessionID string
	destroyed []string
}

func (f *fakeSessionService) CreateSession(ctx context.Context, user *models.User) (string, error) {
	return f.sessionID, nil
}

func (f *fakeSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return nil, nil
}

func (f *fakeSessionService) DestroySession(ctx context.Context, sessionID string) error {
	f.destroyed = append(f.destroyed, sessionID)
	return nil
}

func newTestAuthUsecase(userRepo *fakeUserRepository, sessions *fakeSessionService) *authUsecase {
	return &authUsecase{
		UserRepository: userRepo,
		SessionService: sessions,
		InternalConfig: &config.InternalConfig{JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1}},
		Log:            zap.NewNop(),
	}
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("duplicate email conflicts", func(t *testing.T) {
		userRepo := &fakeUserRepository{usersByEmail: map[string]*models.User{
			"taken@example.com": {Email: "taken@example.com"},
		}}
		uc := newTestAuthUsecase(userRepo, &fakeSessionService{})

		_, err := uc.Register(context.Background(), &requests.RegisterUser{
			Email: "taken@example.com", Password: "Sup3r$ecret", Name: "Sara", Gender: "female",
		})
		require.Error(t, err)
		assert.Equal(t, 409, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("defaults to the user role and hashes the password", func(t *testing.T) {
		userRepo := &fakeUserRepository{}
		uc := newTestAuthUsecase(userRepo, &fakeSessionService{})

		result, err := uc.Register(context.Background(), &requests.RegisterUser{
			Email: "new@example.com", Password: "Sup3r$ecret", Name: "Sara", Gender: "female",
		})
		require.NoError(t, err)

		assert.Equal(t, constvars.RoleTypeUser, result.Role)
		assert.NotEqual(t, "Sup3r$ecret", userRepo.created.Password)
		assert.True(t, utils.CheckPasswordHash("Sup3r$ecret", userRepo.created.Password))
	})

	t.Run("only one super admin may ever exist", func(t *testing.T) {
		userRepo := &fakeUserRepository{superAdminCount: 1}
		uc := newTestAuthUsecase(userRepo, &fakeSessionService{})

		_, err := uc.Register(context.Background(), &requests.RegisterUser{
			Email: "boss@example.com", Password: "Sup3r$ecret", Name: "Omar", Gender: "male",
			Role: constvars.RoleTypeSuperAdmin,
		})
		require.Error(t, err)
		assert.Equal(t, 409, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("first super admin is allowed", func(t *testing.T) {
		userRepo := &fakeUserRepository{}
		uc := newTestAuthUsecase(userRepo, &fakeSessionService{})

		result, err := uc.Register(context.Background(), &requests.RegisterUser{
			Email: "boss@example.com", Password: "Sup3r$ecret", Name: "Omar", Gender: "male",
			Role: constvars.RoleTypeSuperAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, constvars.RoleTypeSuperAdmin, result.Role)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hashed, err := utils.HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "sara@example.com",
		Password: hashed,
		Role:     constvars.RoleTypeUser,
	}

	t.Run("unknown email is rejected without detail", func(t *testing.T) {
		uc := newTestAuthUsecase(&fakeUserRepository{}, &fakeSessionService{})
		_, err := uc.Login(context.Background(), &requests.LoginUser{Email: "ghost@example.com", Password: "whatever1"})
		require.Error(t, err)
		assert.Equal(t, 401, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("wrong password is rejected with the same error", func(t *testing.T) {
		userRepo := &fakeUserRepository{usersByEmail: map[string]*models.User{user.Email: user}}
		uc := newTestAuthUsecase(userRepo, &fakeSessionService{})

		_, err := uc.Login(context.Background(), &requests.LoginUser{Email: user.Email, Password: "not-the-one"})
		require.Error(t, err)
		assert.Equal(t, 401, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("valid credentials produce a token carrying the session", func(t *testing.T) {
		userRepo := &fakeUserRepository{usersByEmail: map[string]*models.User{user.Email: user}}
		uc := newTestAuthUsecase(userRepo, &fakeSessionService{sessionID: "session-123"})

		result, err := uc.Login(context.Background(), &requests.LoginUser{Email: user.Email, Password: "Sup3r$ecret"})
		require.NoError(t, err)

		sessionID, err := utils.ParseJWT(result.Token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, "session-123", sessionID)
		assert.Equal(t, user.Email, result.User.Email)
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	sessions := &fakeSessionService{}
	uc := newTestAuthUsecase(&fakeUserRepository{}, sessions)

	require.NoError(t, uc.Logout(context.Background(), "session-123"))
	assert.Equal(t, []string{"session-123"}, sessions.destroyed)
}
