package groups

import (
	"context"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/constvars"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeGroupRepository struct {
	contracts.GroupRepository

	group         *models.Group
	newAdminID    string
	addedMembers  []string
	pulledMembers []string
	hasOtherGroup bool
}

func (f *fakeGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*models.Group, error) {
	return f.group, nil
}

func (f *fakeGroupRepository) SetGroupAdmin(ctx context.Context, groupID, adminID string) error {
	f.newAdminID = adminID
	return nil
}

func (f *fakeGroupRepository) AddGroupMembers(ctx context.Context, groupID string, memberIDs []string) error {
	f.addedMembers = append(f.addedMembers, memberIDs...)
	return nil
}

func (f *fakeGroupRepository) RemoveGroupMembers(ctx context.Context, groupID string, memberIDs []string) error {
	f.pulledMembers = append(f.pulledMembers, memberIDs...)
	return nil
}

func (f *fakeGroupRepository) HasOtherGroupWithAdmin(ctx context.Context, excludeGroupID, adminID string) (bool, error) {
	return f.hasOtherGroup, nil
}

type fakeUserRepository struct {
	contracts.UserRepository

	users       map[string]*models.User
	roleChanges map[string]string
}

func (f *fakeUserRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserRepository) SetUserRole(ctx context.Context, userID, role string) error {
	if f.roleChanges == nil {
		f.roleChanges = map[string]string{}
	}
	f.roleChanges[userID] = role
	return nil
}

func (f *fakeUserRepository) AddGroupToUsers(ctx context.Context, userIDs []string, groupID string) error {
	return nil
}

func (f *fakeUserRepository) RemoveGroupFromUsers(ctx context.Context, userIDs []string, groupID string) error {
	return nil
}

func newTestGroupUsecase(t *testing.T, groupRepo *fakeGroupRepository, userRepo *fakeUserRepository) *groupUsecase {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)
	return &groupUsecase{
		GroupRepository: groupRepo,
		UserRepository:  userRepo,
		Log:             zap.NewNop(),
		Location:        loc,
		now:             time.Now,
	}
}

func testGroup(admin, member primitive.ObjectID) *models.Group {
	return &models.Group{
		ID:      primitive.NewObjectID(),
		Name:    "platform team",
		Admin:   admin,
		Members: []primitive.ObjectID{member},
	}
}

func TestGroupUsecase_ReassignAdmin(t *testing.T) {
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()

	t.Run("global admin of another group may not reassign", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: primitive.NewObjectID().Hex(), Role: constvars.RoleTypeAdmin}
		_, err := uc.ReassignAdmin(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ReassignGroupAdmin{Admin: member.Hex()})
		require.Error(t, err)
		assert.Equal(t, 403, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("new admin must already be a member", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		_, err := uc.ReassignAdmin(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ReassignGroupAdmin{Admin: primitive.NewObjectID().Hex()})
		require.Error(t, err)
		assert.Equal(t, 400, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("handover promotes the member and demotes the outgoing admin", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		userRepo := &fakeUserRepository{users: map[string]*models.User{
			admin.Hex():  {ID: admin, Role: constvars.RoleTypeAdmin},
			member.Hex(): {ID: member, Role: constvars.RoleTypeUser},
		}}
		uc := newTestGroupUsecase(t, groupRepo, userRepo)

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		result, err := uc.ReassignAdmin(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ReassignGroupAdmin{Admin: member.Hex()})
		require.NoError(t, err)

		assert.Equal(t, member.Hex(), groupRepo.newAdminID)
		assert.Equal(t, member.Hex(), result.Admin)
		assert.Equal(t, constvars.RoleTypeAdmin, userRepo.roleChanges[member.Hex()])
		assert.Equal(t, constvars.RoleTypeUser, userRepo.roleChanges[admin.Hex()])
	})

	t.Run("outgoing admin keeps the role while administering another group", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member), hasOtherGroup: true}
		userRepo := &fakeUserRepository{users: map[string]*models.User{
			admin.Hex():  {ID: admin, Role: constvars.RoleTypeAdmin},
			member.Hex(): {ID: member, Role: constvars.RoleTypeUser},
		}}
		uc := newTestGroupUsecase(t, groupRepo, userRepo)

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		_, err := uc.ReassignAdmin(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ReassignGroupAdmin{Admin: member.Hex()})
		require.NoError(t, err)

		_, demoted := userRepo.roleChanges[admin.Hex()]
		assert.False(t, demoted)
	})

	t.Run("super admin outgoing is never demoted", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		userRepo := &fakeUserRepository{users: map[string]*models.User{
			admin.Hex():  {ID: admin, Role: constvars.RoleTypeSuperAdmin},
			member.Hex(): {ID: member, Role: constvars.RoleTypeUser},
		}}
		uc := newTestGroupUsecase(t, groupRepo, userRepo)

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeSuperAdmin}
		_, err := uc.ReassignAdmin(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ReassignGroupAdmin{Admin: member.Hex()})
		require.NoError(t, err)

		_, demoted := userRepo.roleChanges[admin.Hex()]
		assert.False(t, demoted)
	})

	t.Run("reassigning to the current admin is a no-op", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		result, err := uc.ReassignAdmin(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ReassignGroupAdmin{Admin: admin.Hex()})
		require.NoError(t, err)
		assert.Equal(t, admin.Hex(), result.Admin)
		assert.Empty(t, groupRepo.newAdminID)
	})
}

func TestGroupUsecase_AddMembers(t *testing.T) {
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()
	newcomer := primitive.NewObjectID()

	t.Run("plain user is rejected", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: primitive.NewObjectID().Hex(), Role: constvars.RoleTypeUser}
		_, err := uc.AddMembers(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ChangeGroupMembers{Members: []string{newcomer.Hex()}})
		require.Error(t, err)
		assert.Equal(t, 403, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("adding only existing members conflicts", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		_, err := uc.AddMembers(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ChangeGroupMembers{Members: []string{member.Hex()}})
		require.Error(t, err)
		assert.Equal(t, 409, err.(*exceptions.CustomError).StatusCode)
		assert.Empty(t, groupRepo.addedMembers)
	})

	t.Run("adds only the genuinely new members", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		userRepo := &fakeUserRepository{users: map[string]*models.User{
			newcomer.Hex(): {ID: newcomer, Role: constvars.RoleTypeUser},
		}}
		uc := newTestGroupUsecase(t, groupRepo, userRepo)

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		result, err := uc.AddMembers(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ChangeGroupMembers{Members: []string{member.Hex(), newcomer.Hex()}})
		require.NoError(t, err)

		assert.Equal(t, []string{newcomer.Hex()}, groupRepo.addedMembers)
		assert.Contains(t, result.Members, newcomer.Hex())
	})

	t.Run("unknown user fails the whole request", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		_, err := uc.AddMembers(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ChangeGroupMembers{Members: []string{newcomer.Hex()}})
		require.Error(t, err)
		assert.Equal(t, 404, err.(*exceptions.CustomError).StatusCode)
	})
}

func TestGroupUsecase_RemoveMembers(t *testing.T) {
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()

	t.Run("removing absent members is an error", func(t *testing.T) {
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		_, err := uc.RemoveMembers(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ChangeGroupMembers{Members: []string{primitive.NewObjectID().Hex()}})
		require.Error(t, err)
		assert.Equal(t, 400, err.(*exceptions.CustomError).StatusCode)
	})

	t.Run("removes the intersection only", func(t *testing.T) {
		outsider := primitive.NewObjectID()
		groupRepo := &fakeGroupRepository{group: testGroup(admin, member)}
		uc := newTestGroupUsecase(t, groupRepo, &fakeUserRepository{})

		session := &models.Session{UserID: admin.Hex(), Role: constvars.RoleTypeAdmin}
		result, err := uc.RemoveMembers(context.Background(), groupRepo.group.ID.Hex(), session, &requests.ChangeGroupMembers{Members: []string{member.Hex(), outsider.Hex()}})
		require.NoError(t, err)

		assert.Equal(t, []string{member.Hex()}, groupRepo.pulledMembers)
		assert.NotContains(t, result.Members, member.Hex())
	})
}
