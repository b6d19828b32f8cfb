package groups

import (
	"context"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/constvars"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/exceptions"
	"mawaid-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type GroupController struct {
	Log          *zap.Logger
	GroupUsecase contracts.GroupUsecase
}

func NewGroupController(logger *zap.Logger, groupUsecase contracts.GroupUsecase) *GroupController {
	return &GroupController{
		Log:          logger,
		GroupUsecase: groupUsecase,
	}
}

func groupIDFromURL(r *http.Request) (string, error) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		return "", exceptions.ErrURLParamMissing("groupID")
	}
	return groupID, nil
}

func (ctrl *GroupController) Create(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateGroup)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GroupUsecase.Create(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.GroupCreatedSuccess, result)
}

func (ctrl *GroupController) FindMine(w http.ResponseWriter, r *http.Request) {
	session, err := utils.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GroupUsecase.FindForUser(ctx, session)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GroupGetSuccess, result)
}

func (ctrl *GroupController) Update(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDFromURL(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateGroup)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GroupUsecase.Update(ctx, groupID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GroupUpdatedSuccess, result)
}

func (ctrl *GroupController) Delete(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDFromURL(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.GroupUsecase.Delete(ctx, groupID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GroupDeletedSuccess, nil)
}

func (ctrl *GroupController) GetAdmin(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDFromURL(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GroupUsecase.GetAdmin(ctx, groupID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GroupAdminGetSuccess, result)
}

func (ctrl *GroupController) ReassignAdmin(w http.ResponseWriter, r *http.Request) {
	session, err := utils.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	groupID, err := groupIDFromURL(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ReassignGroupAdmin)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GroupUsecase.ReassignAdmin(ctx, groupID, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GroupAdminUpdatedSuccess, result)
}

func (ctrl *GroupController) GetMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDFromURL(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GroupUsecase.GetMembers(ctx, groupID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GroupMembersGetSuccess, result)
}

func (ctrl *GroupController) changeMembers(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, groupID string, session *models.Session, request *requests.ChangeGroupMembers) (interface{}, string, error)) {
	session, err := utils.SessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	groupID, err := groupIDFromURL(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ChangeGroupMembers)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeChangeGroupMembersRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, message, err := apply(ctx, groupID, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, message, result)
}

func (ctrl *GroupController) AddMembers(w http.ResponseWriter, r *http.Request) {
	ctrl.changeMembers(w, r, func(ctx context.Context, groupID string, session *models.Session, request *requests.ChangeGroupMembers) (interface{}, string, error) {
		result, err := ctrl.GroupUsecase.AddMembers(ctx, groupID, session, request)
		return result, constvars.GroupMembersAddedSuccess, err
	})
}

func (ctrl *GroupController) RemoveMembers(w http.ResponseWriter, r *http.Request) {
	ctrl.changeMembers(w, r, func(ctx context.Context, groupID string, session *models.Session, request *requests.ChangeGroupMembers) (interface{}, string, error) {
		result, err := ctrl.GroupUsecase.RemoveMembers(ctx, groupID, session, request)
		return result, constvars.GroupMembersRemovedSuccess, err
	})
}

func (ctrl *GroupController) GetAppointments(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDFromURL(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.GroupUsecase.GetAppointments(ctx, groupID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GroupAppointmentsSuccess, result)
}
