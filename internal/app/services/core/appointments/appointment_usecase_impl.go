package appointments

import (
	"context"
	"fmt"
	"mawaid-service/internal/app/config"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
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

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	GroupRepository       contracts.GroupRepository
	UserRepository        contracts.UserRepository
	LockerService         contracts.LockerService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	Location              *time.Location

	now func() time.Time
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	groupRepository contracts.GroupRepository,
	userRepository contracts.UserRepository,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
	location *time.Location,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			GroupRepository:       groupRepository,
			UserRepository:        userRepository,
			LockerService:         lockerService,
			InternalConfig:        internalConfig,
			Log:                   logger,
			Location:              location,
			now:                   time.Now,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*responses.Appointment, error) {
	now := uc.now()

	startingTime := request.StartingTime
	if startingTime == "" {
		startingTime = constvars.DefaultStartingTime
	}
	start, err := utils.CombineCivilDateTime(request.StartingDate, startingTime, uc.Location)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if !start.After(now) {
		return nil, exceptions.ErrStartingDateInPast(nil)
	}
	if request.EndingDate != "" && request.EndingDate < request.StartingDate {
		return nil, exceptions.ErrEndingBeforeStarting(nil)
	}

	creatorID, err := utils.ToObjectID(session.UserID)
	if err != nil {
		return nil, err
	}

	attendance, err := uc.expandAttendance(ctx, session, creatorID, request.Attendance, request.Groups)
	if err != nil {
		return nil, err
	}

	groupIDs, err := utils.ToObjectIDs(request.Groups)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		Title:        request.Title,
		CreatorID:    creatorID,
		GroupIDs:     groupIDs,
		StartingDate: request.StartingDate,
		EndingDate:   request.EndingDate,
		StartingTime: request.StartingTime,
		EndingTime:   request.EndingTime,
		Status:       models.StatusPending,
		Attendance:   attendance,
		AcceptedBy:   []primitive.ObjectID{},
		Rating:       []models.RatingLedgerEntry{},
	}
	appointment.SetCreatedAtUpdatedAt()

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}
	appointment.ID, _ = utils.ToObjectID(appointmentID)

	if len(request.Groups) > 0 {
		if err := uc.GroupRepository.AddAppointmentToGroups(ctx, request.Groups, appointmentID); err != nil {
			return nil, err
		}
	}
	for _, attendee := range attendance {
		if err := uc.UserRepository.AddAppointmentToUser(ctx, attendee.Hex(), appointmentID); err != nil {
			return nil, err
		}
	}

	uc.Log.Info("appointmentUsecase.Create created appointment",
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return NewAppointmentResponse(appointment, appointment.Status), nil
}

// expandAttendance merges the explicitly named attendees with every member
// and the admin of each referenced group, deduplicated. The creator is always
// part of the result. Referencing a group requires administering it.
func (uc *appointmentUsecase) expandAttendance(ctx context.Context, session *models.Session, creatorID primitive.ObjectID, userIDs, groupIDs []string) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]struct{})
	attendance := make([]primitive.ObjectID, 0, len(userIDs)+1)

	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		attendance = append(attendance, id)
	}

	for _, userID := range userIDs {
		objectID, err := utils.ToObjectID(userID)
		if err != nil {
			return nil, err
		}
		add(objectID)
	}

	for _, groupID := range groupIDs {
		group, err := uc.GroupRepository.FindGroupByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, exceptions.ErrGroupNotExist(fmt.Errorf("group %s not found", groupID))
		}
		if !models.CanAdministerGroup(session, group) {
			return nil, exceptions.ErrNotGroupAdmin(groupID)
		}
		for _, member := range group.Members {
			add(member)
		}
		add(group.Admin)
	}

	add(creatorID)
	return attendance, nil
}

func (uc *appointmentUsecase) FindForUser(ctx context.Context, session *models.Session) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.FindAppointmentsByAttendee(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return uc.buildAppointmentList(appointments), nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}
	return NewAppointmentResponse(appointment, ResolveStatus(appointment, uc.now(), uc.Location)), nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, filter contracts.AppointmentListFilter, page, pageSize int) ([]responses.Appointment, int, error) {
	if filter.Status != "" && !models.AppointmentStatus(filter.Status).Valid() {
		return nil, 0, exceptions.ErrInvalidStatusValue(fmt.Errorf("unknown status %q", filter.Status))
	}
	for _, date := range []string{filter.StartingDate, filter.FromDate, filter.ToDate} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(constvars.CivilDateLayout, date); err != nil {
			return nil, 0, exceptions.ErrInputValidation(err)
		}
	}
	if filter.FromDate != "" && filter.ToDate != "" && filter.ToDate < filter.FromDate {
		return nil, 0, exceptions.ErrInputValidation(fmt.Errorf("range end %q precedes start %q", filter.ToDate, filter.FromDate))
	}

	appointments, total, err := uc.AppointmentRepository.FindAppointments(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return uc.buildAppointmentList(appointments), int(total), nil
}

func (uc *appointmentUsecase) Update(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}

	if request.Title != "" {
		appointment.Title = request.Title
	}
	if request.StartingDate != "" {
		appointment.StartingDate = request.StartingDate
	}
	if request.EndingDate != "" {
		appointment.EndingDate = request.EndingDate
	}
	if request.StartingTime != "" {
		appointment.StartingTime = request.StartingTime
	}
	if request.EndingTime != "" {
		appointment.EndingTime = request.EndingTime
	}
	if appointment.EndingDate != "" && appointment.EndingDate < appointment.StartingDate {
		return nil, exceptions.ErrEndingBeforeStarting(nil)
	}

	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}
	return NewAppointmentResponse(appointment, ResolveStatus(appointment, uc.now(), uc.Location)), nil
}

func (uc *appointmentUsecase) Delete(ctx context.Context, appointmentID string) error {
	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotExist(nil)
	}

	if len(appointment.GroupIDs) > 0 {
		if err := uc.GroupRepository.RemoveAppointmentFromGroups(ctx, utils.ToHexIDs(appointment.GroupIDs), appointmentID); err != nil {
			return err
		}
	}
	if len(appointment.Attendance) > 0 {
		if err := uc.UserRepository.RemoveAppointmentFromUsers(ctx, utils.ToHexIDs(appointment.Attendance), appointmentID); err != nil {
			return err
		}
	}

	return uc.AppointmentRepository.DeleteAppointmentByID(ctx, appointmentID)
}

func (uc *appointmentUsecase) ChangeStatus(ctx context.Context, appointmentID string, request *requests.ChangeAppointmentStatus) (*responses.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}

	status := models.AppointmentStatus(request.Status)
	if !status.Valid() {
		return nil, exceptions.ErrInvalidStatusValue(fmt.Errorf("unknown status %q", request.Status))
	}

	if err := uc.AppointmentRepository.UpdateAppointmentStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}

	appointment.Status = status
	uc.Log.Info("appointmentUsecase.ChangeStatus updated status",
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)
	return NewAppointmentResponse(appointment, status), nil
}

func (uc *appointmentUsecase) Accept(ctx context.Context, appointmentID string, session *models.Session) (*responses.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}

	userID, err := utils.ToObjectID(session.UserID)
	if err != nil {
		return nil, err
	}
	if appointment.HasAccepted(userID) {
		return nil, exceptions.ErrAlreadyAccepted(nil)
	}
	if !appointment.HasAttendee(userID) {
		return nil, exceptions.ErrNotEligibleToAccept(nil)
	}

	ok, err := uc.AppointmentRepository.AddAcceptance(ctx, appointmentID, session.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// the guarded update lost a race; the pre-checks passed, so the only
		// way to match nothing is that someone recorded this acceptance first
		return nil, exceptions.ErrAlreadyAccepted(nil)
	}

	if err := uc.UserRepository.AddAppointmentToUser(ctx, session.UserID, appointmentID); err != nil {
		return nil, err
	}

	appointment.AcceptedBy = append(appointment.AcceptedBy, userID)
	return NewAppointmentResponse(appointment, ResolveStatus(appointment, uc.now(), uc.Location)), nil
}

func (uc *appointmentUsecase) SubmitRating(ctx context.Context, appointmentID string, session *models.Session, request *requests.SubmitRating) (*responses.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}

	now := uc.now()
	if ResolveStatus(appointment, now, uc.Location) != models.StatusActive {
		return nil, exceptions.ErrRatingOutsideActiveWindow(nil)
	}

	raterID, err := utils.ToObjectID(session.UserID)
	if err != nil {
		return nil, err
	}
	canRate := session.HasRole(constvars.RoleTypeAdmin, constvars.RoleTypeSuperAdmin) ||
		appointment.HasAccepted(raterID)
	if !canRate {
		return nil, exceptions.ErrRaterNotAccepted(nil)
	}

	lockKey := fmt.Sprintf(constvars.RatingSubmitLockKeyFormat, appointmentID, session.UserID)
	lockTTL := time.Duration(uc.InternalConfig.App.RatingSubmitLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrRatingLockHeld(nil)
	}
	defer func() {
		if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.SubmitRating failed releasing lock",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	entry := buildRatingLedgerEntry(appointment, raterID, request, now)

	window := contracts.RatingWindow{SingleDay: appointment.SingleDay()}
	if !window.SingleDay {
		window.DayStart, window.DayEnd = utils.CivilDayBounds(now, uc.Location)
	}

	ok, err := uc.AppointmentRepository.AppendRatingEntry(ctx, appointmentID, entry, window, window.SingleDay)
	if err != nil {
		return nil, err
	}
	if !ok {
		if window.SingleDay {
			return nil, exceptions.ErrAlreadyRated(nil)
		}
		return nil, exceptions.ErrAlreadyRatedToday(nil)
	}

	appointment.Rating = append(appointment.Rating, *entry)
	if window.SingleDay {
		appointment.Status = models.StatusCompleted
	}

	uc.Log.Info("appointmentUsecase.SubmitRating recorded rating",
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return NewAppointmentResponse(appointment, ResolveStatus(appointment, now, uc.Location)), nil
}

// buildRatingLedgerEntry snapshots one entry per currently accepted attendee;
// later acceptances do not retroactively join older entries.
func buildRatingLedgerEntry(appointment *models.Appointment, raterID primitive.ObjectID, request *requests.SubmitRating, now time.Time) *models.RatingLedgerEntry {
	cumulative := 0
	reviews := make([]models.Review, 0, len(request.Reviews))
	for _, review := range request.Reviews {
		cumulative += review.Points
		reviews = append(reviews, models.Review{Title: review.Title, Points: review.Points})
	}

	users := make([]models.RatedUserEntry, 0, len(appointment.AcceptedBy))
	for _, accepted := range appointment.AcceptedBy {
		users = append(users, models.RatedUserEntry{
			RatedUser:              accepted,
			CumulativeRatingPoints: cumulative,
			Comment:                request.Comment,
			Reviews:                reviews,
		})
	}

	return &models.RatingLedgerEntry{
		RatedBy:  raterID,
		HasRated: true,
		RatedAt:  now,
		Users:    users,
	}
}

func (uc *appointmentUsecase) buildAppointmentList(appointments []models.Appointment) []responses.Appointment {
	now := uc.now()
	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, *NewAppointmentResponse(&appointments[i], ResolveStatus(&appointments[i], now, uc.Location)))
	}
	return result
}

// NewAppointmentResponse maps the stored document to its transport shape with
// the given display status.
func NewAppointmentResponse(appointment *models.Appointment, status models.AppointmentStatus) *responses.Appointment {
	rating := make([]responses.RatingLedgerEntry, 0, len(appointment.Rating))
	for _, entry := range appointment.Rating {
		users := make([]responses.RatedUserEntry, 0, len(entry.Users))
		for _, user := range entry.Users {
			reviews := make([]responses.Review, 0, len(user.Reviews))
			for _, review := range user.Reviews {
				reviews = append(reviews, responses.Review{Title: review.Title, Points: review.Points})
			}
			users = append(users, responses.RatedUserEntry{
				RatedUser:              user.RatedUser.Hex(),
				CumulativeRatingPoints: user.CumulativeRatingPoints,
				Comment:                user.Comment,
				Reviews:                reviews,
			})
		}
		rating = append(rating, responses.RatingLedgerEntry{
			RatedBy:  entry.RatedBy.Hex(),
			HasRated: entry.HasRated,
			RatedAt:  entry.RatedAt.Format(time.RFC3339),
			Users:    users,
		})
	}

	return &responses.Appointment{
		ID:           appointment.ID.Hex(),
		Title:        appointment.Title,
		CreatorID:    appointment.CreatorID.Hex(),
		GroupIDs:     utils.ToHexIDs(appointment.GroupIDs),
		StartingDate: appointment.StartingDate,
		EndingDate:   appointment.EndingDate,
		StartingTime: appointment.StartingTime,
		EndingTime:   appointment.EndingTime,
		Status:       string(status),
		Attendance:   utils.ToHexIDs(appointment.Attendance),
		AcceptedBy:   utils.ToHexIDs(appointment.AcceptedBy),
		Rating:       rating,
	}
}
