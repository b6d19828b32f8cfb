package users

import (
	"context"
	"fmt"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/constvars"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/dto/responses"
	"mawaid-service/internal/pkg/exceptions"
	"mawaid-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	Storage        contracts.Storage
	Log            *zap.Logger
}

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

func NewUserUsecase(
	userRepository contracts.UserRepository,
	storage contracts.Storage,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		instance := &userUsecase{
			UserRepository: userRepository,
			Storage:        storage,
			Log:            logger,
		}
		userUsecaseInstance = instance
	})
	return userUsecaseInstance
}

func (uc *userUsecase) GetProfile(ctx context.Context, session *models.Session) (*responses.UserProfile, error) {
	user, err := uc.UserRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}
	return NewUserProfileResponse(user), nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, session *models.Session, request *requests.UpdateProfile) (*responses.UserProfile, error) {
	user, err := uc.UserRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	if len(request.ProfilePictureData) > 0 {
		objectName := fmt.Sprintf("profile-pictures/%s-%d-%s%s",
			session.UserID, time.Now().Unix(), uuid.NewString(), request.ProfilePictureExtension)
		contentType := "image/" + request.ProfilePictureExtension[1:]

		uploaded, err := uc.Storage.UploadObject(ctx, objectName, request.ProfilePictureData, contentType)
		if err != nil {
			return nil, err
		}
		user.ProfilePic = uploaded
	}

	if request.Name != "" {
		user.Name = request.Name
	}
	if request.Phone != "" {
		user.Phone = request.Phone
	}
	if request.Gender != "" {
		user.Gender = request.Gender
	}

	if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	uc.Log.Info("userUsecase.UpdateProfile updated user",
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return NewUserProfileResponse(user), nil
}

func (uc *userUsecase) Delete(ctx context.Context, session *models.Session) error {
	user, err := uc.UserRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUserNotExist(nil)
	}
	return uc.UserRepository.DeleteUserByID(ctx, session.UserID)
}

func (uc *userUsecase) FindAll(ctx context.Context) ([]responses.UserProfile, error) {
	users, err := uc.UserRepository.FindAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]responses.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *NewUserProfileResponse(&users[i]))
	}
	return profiles, nil
}

// NewUserProfileResponse maps a stored user to its transport shape, never
// exposing the password hash.
func NewUserProfileResponse(user *models.User) *responses.UserProfile {
	return &responses.UserProfile{
		ID:           user.ID.Hex(),
		Email:        user.Email,
		Name:         user.Name,
		Phone:        user.Phone,
		Gender:       user.Gender,
		Role:         user.Role,
		ProfilePic:   user.ProfilePic,
		Appointments: utils.ToHexIDs(user.Appointments),
		Groups:       utils.ToHexIDs(user.Groups),
	}
}
