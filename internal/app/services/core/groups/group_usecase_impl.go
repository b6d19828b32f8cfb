package groups

import (
	"context"
	"fmt"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/app/services/core/appointments"
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

type groupUsecase struct {
	GroupRepository       contracts.GroupRepository
	UserRepository        contracts.UserRepository
	AppointmentRepository contracts.AppointmentRepository
	Log                   *zap.Logger
	Location              *time.Location

	now func() time.Time
}

var (
	groupUsecaseInstance contracts.GroupUsecase
	onceGroupUsecase     sync.Once
)

func NewGroupUsecase(
	groupRepository contracts.GroupRepository,
	userRepository contracts.UserRepository,
	appointmentRepository contracts.AppointmentRepository,
	logger *zap.Logger,
	location *time.Location,
) contracts.GroupUsecase {
	onceGroupUsecase.Do(func() {
		instance := &groupUsecase{
			GroupRepository:       groupRepository,
			UserRepository:        userRepository,
			AppointmentRepository: appointmentRepository,
			Log:                   logger,
			Location:              location,
			now:                   time.Now,
		}
		groupUsecaseInstance = instance
	})
	return groupUsecaseInstance
}

func (uc *groupUsecase) Create(ctx context.Context, request *requests.CreateGroup) (*responses.Group, error) {
	admin, err := uc.UserRepository.FindUserByID(ctx, request.Admin)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, exceptions.ErrUserNotExist(fmt.Errorf("admin %s not found", request.Admin))
	}

	memberOIDs, err := utils.ToObjectIDs(request.Members)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:         request.Name,
		Description:  request.Description,
		Admin:        admin.ID,
		Members:      memberOIDs,
		Appointments: []primitive.ObjectID{},
	}
	group.SetCreatedAtUpdatedAt()

	groupID, err := uc.GroupRepository.CreateGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	group.ID, _ = utils.ToObjectID(groupID)

	affected := append(append([]string{}, request.Members...), request.Admin)
	if err := uc.UserRepository.AddGroupToUsers(ctx, affected, groupID); err != nil {
		return nil, err
	}

	// administering a group carries the admin role unless the user already
	// holds a higher one
	if admin.Role == constvars.RoleTypeUser {
		if err := uc.UserRepository.SetUserRole(ctx, request.Admin, constvars.RoleTypeAdmin); err != nil {
			return nil, err
		}
	}

	uc.Log.Info("groupUsecase.Create created group",
		zap.String(constvars.LoggingGroupIDKey, groupID),
		zap.String(constvars.LoggingUserIDKey, request.Admin),
	)
	return NewGroupResponse(group), nil
}

func (uc *groupUsecase) FindForUser(ctx context.Context, session *models.Session) ([]responses.Group, error) {
	groups, err := uc.GroupRepository.FindGroupsForUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Group, 0, len(groups))
	for i := range groups {
		result = append(result, *NewGroupResponse(&groups[i]))
	}
	return result, nil
}

func (uc *groupUsecase) Update(ctx context.Context, groupID string, request *requests.UpdateGroup) (*responses.Group, error) {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if request.Name != "" {
		group.Name = request.Name
	}
	if request.Description != "" {
		group.Description = request.Description
	}
	if request.GroupPic != "" {
		group.GroupPic = request.GroupPic
	}

	if err := uc.GroupRepository.UpdateGroup(ctx, group); err != nil {
		return nil, err
	}
	return NewGroupResponse(group), nil
}

func (uc *groupUsecase) Delete(ctx context.Context, groupID string) error {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return err
	}

	affected := append(utils.ToHexIDs(group.Members), group.Admin.Hex())
	if err := uc.UserRepository.RemoveGroupFromUsers(ctx, affected, groupID); err != nil {
		return err
	}

	if err := uc.demoteIfLastGroup(ctx, groupID, group.Admin.Hex()); err != nil {
		return err
	}

	return uc.GroupRepository.DeleteGroupByID(ctx, groupID)
}

func (uc *groupUsecase) GetAdmin(ctx context.Context, groupID string) (*responses.UserProfile, error) {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	admin, err := uc.UserRepository.FindUserByID(ctx, group.Admin.Hex())
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}
	return users.NewUserProfileResponse(admin), nil
}

func (uc *groupUsecase) ReassignAdmin(ctx context.Context, groupID string, session *models.Session, request *requests.ReassignGroupAdmin) (*responses.Group, error) {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !models.CanReassignGroupAdmin(session, group) {
		return nil, exceptions.ErrAdminReassignForbidden(nil)
	}

	newAdminOID, err := utils.ToObjectID(request.Admin)
	if err != nil {
		return nil, err
	}
	if newAdminOID == group.Admin {
		return NewGroupResponse(group), nil
	}
	if !group.HasMember(newAdminOID) {
		return nil, exceptions.ErrNewAdminNotMember(nil)
	}

	newAdmin, err := uc.UserRepository.FindUserByID(ctx, request.Admin)
	if err != nil {
		return nil, err
	}
	if newAdmin == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	outgoingAdminID := group.Admin.Hex()
	if err := uc.GroupRepository.SetGroupAdmin(ctx, groupID, request.Admin); err != nil {
		return nil, err
	}

	if newAdmin.Role == constvars.RoleTypeUser {
		if err := uc.UserRepository.SetUserRole(ctx, request.Admin, constvars.RoleTypeAdmin); err != nil {
			return nil, err
		}
	}
	if err := uc.demoteIfLastGroup(ctx, groupID, outgoingAdminID); err != nil {
		return nil, err
	}

	group.Admin = newAdminOID
	uc.Log.Info("groupUsecase.ReassignAdmin handed group over",
		zap.String(constvars.LoggingGroupIDKey, groupID),
		zap.String(constvars.LoggingUserIDKey, request.Admin),
	)
	return NewGroupResponse(group), nil
}

// demoteIfLastGroup drops an outgoing admin back to the plain user role once
// they administer no remaining group. Super admins keep their role.
func (uc *groupUsecase) demoteIfLastGroup(ctx context.Context, excludeGroupID, adminID string) error {
	outgoing, err := uc.UserRepository.FindUserByID(ctx, adminID)
	if err != nil {
		return err
	}
	if outgoing == nil || outgoing.Role != constvars.RoleTypeAdmin {
		return nil
	}

	stillAdmin, err := uc.GroupRepository.HasOtherGroupWithAdmin(ctx, excludeGroupID, adminID)
	if err != nil {
		return err
	}
	if stillAdmin {
		return nil
	}
	return uc.UserRepository.SetUserRole(ctx, adminID, constvars.RoleTypeUser)
}

func (uc *groupUsecase) GetMembers(ctx context.Context, groupID string) ([]responses.UserProfile, error) {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	profiles := make([]responses.UserProfile, 0, len(group.Members))
	for _, memberOID := range group.Members {
		member, err := uc.UserRepository.FindUserByID(ctx, memberOID.Hex())
		if err != nil {
			return nil, err
		}
		if member == nil {
			continue
		}
		profiles = append(profiles, *users.NewUserProfileResponse(member))
	}
	return profiles, nil
}

func (uc *groupUsecase) AddMembers(ctx context.Context, groupID string, session *models.Session, request *requests.ChangeGroupMembers) (*responses.Group, error) {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !models.CanAdministerGroup(session, group) {
		return nil, exceptions.ErrNotGroupAdmin(groupID)
	}

	newMembers := make([]string, 0, len(request.Members))
	for _, memberID := range request.Members {
		memberOID, err := utils.ToObjectID(memberID)
		if err != nil {
			return nil, err
		}
		if group.HasMember(memberOID) {
			continue
		}

		member, err := uc.UserRepository.FindUserByID(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, exceptions.ErrUserNotExist(fmt.Errorf("member %s not found", memberID))
		}
		newMembers = append(newMembers, memberID)
		group.Members = append(group.Members, memberOID)
	}
	if len(newMembers) == 0 {
		return nil, exceptions.ErrMembersAlreadyInGroup(nil)
	}

	if err := uc.GroupRepository.AddGroupMembers(ctx, groupID, newMembers); err != nil {
		return nil, err
	}
	if err := uc.UserRepository.AddGroupToUsers(ctx, newMembers, groupID); err != nil {
		return nil, err
	}

	return NewGroupResponse(group), nil
}

func (uc *groupUsecase) RemoveMembers(ctx context.Context, groupID string, session *models.Session, request *requests.ChangeGroupMembers) (*responses.Group, error) {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !models.CanAdministerGroup(session, group) {
		return nil, exceptions.ErrNotGroupAdmin(groupID)
	}

	removable := make([]string, 0, len(request.Members))
	for _, memberID := range request.Members {
		memberOID, err := utils.ToObjectID(memberID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(memberOID) {
			continue
		}
		removable = append(removable, memberID)
	}
	if len(removable) == 0 {
		return nil, exceptions.ErrNoMembersRemoved(nil)
	}

	if err := uc.GroupRepository.RemoveGroupMembers(ctx, groupID, removable); err != nil {
		return nil, err
	}
	if err := uc.UserRepository.RemoveGroupFromUsers(ctx, removable, groupID); err != nil {
		return nil, err
	}

	removedSet := make(map[string]struct{}, len(removable))
	for _, memberID := range removable {
		removedSet[memberID] = struct{}{}
	}
	remaining := group.Members[:0]
	for _, memberOID := range group.Members {
		if _, removed := removedSet[memberOID.Hex()]; !removed {
			remaining = append(remaining, memberOID)
		}
	}
	group.Members = remaining

	return NewGroupResponse(group), nil
}

func (uc *groupUsecase) GetAppointments(ctx context.Context, groupID string) ([]responses.Appointment, error) {
	group, err := uc.findExistingGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	result := make([]responses.Appointment, 0, len(group.Appointments))
	for _, appointmentOID := range group.Appointments {
		appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentOID.Hex())
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			continue
		}
		status := appointments.ResolveStatus(appointment, now, uc.Location)
		result = append(result, *appointments.NewAppointmentResponse(appointment, status))
	}
	return result, nil
}

func (uc *groupUsecase) findExistingGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := uc.GroupRepository.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, exceptions.ErrGroupNotExist(nil)
	}
	return group, nil
}

func NewGroupResponse(group *models.Group) *responses.Group {
	return &responses.Group{
		ID:           group.ID.Hex(),
		Name:         group.Name,
		Description:  group.Description,
		GroupPic:     group.GroupPic,
		Admin:        group.Admin.Hex(),
		Members:      utils.ToHexIDs(group.Members),
		Appointments: utils.ToHexIDs(group.Appointments),
	}
}
