package appointments

import (
	"context"
	"mawaid-service/internal/app/config"
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

type fakeAppointmentRepository struct {
	contracts.AppointmentRepository

	appointment *models.Appointment

	addAcceptanceResult bool
	addAcceptanceCalls  int

	appendResult       bool
	appendCalls        int
	appendEntry        *models.RatingLedgerEntry
	appendWindow       contracts.RatingWindow
	appendMarkComplete bool

	listFilter contracts.AppointmentListFilter
	listCalls  int
}

func (f *fakeAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return f.appointment, nil
}

func (f *fakeAppointmentRepository) AddAcceptance(ctx context.Context, appointmentID, userID string) (bool, error) {
	f.addAcceptanceCalls++
	return f.addAcceptanceResult, nil
}

func (f *fakeAppointmentRepository) AppendRatingEntry(ctx context.Context, appointmentID string, entry *models.RatingLedgerEntry, window contracts.RatingWindow, markCompleted bool) (bool, error) {
	f.appendCalls++
	f.appendEntry = entry
	f.appendWindow = window
	f.appendMarkComplete = markCompleted
	return f.appendResult, nil
}

func (f *fakeAppointmentRepository) FindAppointments(ctx context.Context, filter contracts.AppointmentListFilter, page, pageSize int) ([]models.Appointment, int64, error) {
	f.listCalls++
	f.listFilter = filter
	if f.appointment == nil {
		return nil, 0, nil
	}
	return []models.Appointment{*f.appointment}, 1, nil
}

type fakeGroupRepository struct {
	contracts.GroupRepository

	groups map[string]*models.Group
}

func (f *fakeGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*models.Group, error) {
	return f.groups[groupID], nil
}

type fakeUserRepository struct {
	contracts.UserRepository

	addAppointmentCalls []string
}

func (f *fakeUserRepository) AddAppointmentToUser(ctx context.Context, userID, appointmentID string) error {
	f.addAppointmentCalls = append(f.addAppointmentCalls, userID)
	return nil
}

type fakeLocker struct {
	acquired    bool
	unlockCalls int
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return f.acquired, "lock-value", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlockCalls++
	return nil
}

func (f *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

func newTestUsecase(t *testing.T, repo *fakeAppointmentRepository, groupRepo *fakeGroupRepository, userRepo *fakeUserRepository, locker *fakeLocker, now time.Time) *appointmentUsecase {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)
	return &appointmentUsecase{
		AppointmentRepository: repo,
		GroupRepository:       groupRepo,
		UserRepository:        userRepo,
		LockerService:         locker,
		InternalConfig:        &config.InternalConfig{App: config.App{RatingSubmitLockTTLInSeconds: 10}},
		Log:                   zap.NewNop(),
		Location:              loc,
		now:                   func() time.Time { return now },
	}
}

func assertCustomErrorStatus(t *testing.T, err error, expectedCode int) {
	t.Helper()
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok, "expected a CustomError, got %T", err)
	assert.Equal(t, expectedCode, customErr.StatusCode)
}

func TestAppointmentUsecase_Create(t *testing.T) {
	loc, _ := time.LoadLocation("Africa/Cairo")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	session := &models.Session{UserID: primitive.NewObjectID().Hex(), Role: "admin"}

	t.Run("rejects a start in the past", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeAppointmentRepository{}, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)
		_, err := uc.Create(context.Background(), session, &requests.CreateAppointment{
			Title:        "quarterly review",
			StartingDate: "2026-03-10",
			StartingTime: "09:00",
		})
		assert.Equal(t, exceptions.ErrStartingDateInPast(nil).ClientMessage, err.(*exceptions.CustomError).ClientMessage)
	})

	t.Run("rejects ending date before starting date", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeAppointmentRepository{}, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)
		_, err := uc.Create(context.Background(), session, &requests.CreateAppointment{
			Title:        "quarterly review",
			StartingDate: "2026-03-12",
			EndingDate:   "2026-03-11",
		})
		assertCustomErrorStatus(t, err, 400)
	})

	t.Run("expands group members into attendance without duplicates", func(t *testing.T) {
		creator := primitive.NewObjectID()
		shared := primitive.NewObjectID()
		admin := primitive.NewObjectID()
		member := primitive.NewObjectID()
		groupID := primitive.NewObjectID()

		groupRepo := &fakeGroupRepository{groups: map[string]*models.Group{
			groupID.Hex(): {
				ID:      groupID,
				Admin:   admin,
				Members: []primitive.ObjectID{shared, member},
			},
		}}
		uc := newTestUsecase(t, &fakeAppointmentRepository{}, groupRepo, &fakeUserRepository{}, &fakeLocker{}, now)

		attendance, err := uc.expandAttendance(context.Background(), session, creator, []string{shared.Hex()}, []string{groupID.Hex()})
		require.NoError(t, err)
		assert.ElementsMatch(t, []primitive.ObjectID{shared, member, admin, creator}, attendance)
		assert.Len(t, attendance, 4)
	})

	t.Run("creator is always an attendee", func(t *testing.T) {
		creator := primitive.NewObjectID()
		uc := newTestUsecase(t, &fakeAppointmentRepository{}, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)

		attendance, err := uc.expandAttendance(context.Background(), session, creator, []string{creator.Hex()}, nil)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{creator}, attendance)
	})

	t.Run("plain user cannot pull in a group they do not administer", func(t *testing.T) {
		groupID := primitive.NewObjectID()
		groupRepo := &fakeGroupRepository{groups: map[string]*models.Group{
			groupID.Hex(): {ID: groupID, Admin: primitive.NewObjectID()},
		}}
		uc := newTestUsecase(t, &fakeAppointmentRepository{}, groupRepo, &fakeUserRepository{}, &fakeLocker{}, now)

		plain := &models.Session{UserID: primitive.NewObjectID().Hex(), Role: constvars.RoleTypeUser}
		_, err := uc.expandAttendance(context.Background(), plain, primitive.NewObjectID(), nil, []string{groupID.Hex()})
		assertCustomErrorStatus(t, err, 403)
	})

	t.Run("fails when a referenced group does not exist", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeAppointmentRepository{}, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)
		_, err := uc.expandAttendance(context.Background(), session, primitive.NewObjectID(), nil, []string{primitive.NewObjectID().Hex()})
		assertCustomErrorStatus(t, err, 404)
	})
}

func TestAppointmentUsecase_FindAll(t *testing.T) {
	loc, _ := time.LoadLocation("Africa/Cairo")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := &fakeAppointmentRepository{}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)

		_, _, err := uc.FindAll(context.Background(), contracts.AppointmentListFilter{Status: "snoozed"}, 1, 20)
		assertCustomErrorStatus(t, err, 400)
		assert.Zero(t, repo.listCalls)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		repo := &fakeAppointmentRepository{}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)

		_, _, err := uc.FindAll(context.Background(), contracts.AppointmentListFilter{StartingDate: "10-03-2026"}, 1, 20)
		assertCustomErrorStatus(t, err, 400)
		assert.Zero(t, repo.listCalls)
	})

	t.Run("rejects a range ending before it starts", func(t *testing.T) {
		repo := &fakeAppointmentRepository{}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)

		filter := contracts.AppointmentListFilter{FromDate: "2026-03-12", ToDate: "2026-03-10"}
		_, _, err := uc.FindAll(context.Background(), filter, 1, 20)
		assertCustomErrorStatus(t, err, 400)
		assert.Zero(t, repo.listCalls)
	})

	t.Run("passes the date filter through to the repository", func(t *testing.T) {
		attendee := primitive.NewObjectID()
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, attendee)}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)

		filter := contracts.AppointmentListFilter{Status: "active", FromDate: "2026-03-01", ToDate: "2026-03-31"}
		result, total, err := uc.FindAll(context.Background(), filter, 1, 20)
		require.NoError(t, err)

		assert.Equal(t, filter, repo.listFilter)
		assert.Equal(t, 1, total)
		require.Len(t, result, 1)
		assert.Equal(t, string(models.StatusActive), result[0].Status)
	})

	t.Run("single civil date filter", func(t *testing.T) {
		attendee := primitive.NewObjectID()
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, attendee)}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)

		_, _, err := uc.FindAll(context.Background(), contracts.AppointmentListFilter{StartingDate: "2026-03-10"}, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-10", repo.listFilter.StartingDate)
	})
}

func activeAppointment(attendee, accepted primitive.ObjectID) *models.Appointment {
	return &models.Appointment{
		ID:           primitive.NewObjectID(),
		Title:        "standup",
		Status:       models.StatusActive,
		StartingDate: "2026-03-10",
		StartingTime: "09:00",
		EndingTime:   "18:00",
		Attendance:   []primitive.ObjectID{attendee, accepted},
		AcceptedBy:   []primitive.ObjectID{accepted},
	}
}

func TestAppointmentUsecase_Accept(t *testing.T) {
	loc, _ := time.LoadLocation("Africa/Cairo")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	attendee := primitive.NewObjectID()
	accepted := primitive.NewObjectID()

	t.Run("unknown appointment", func(t *testing.T) {
		uc := newTestUsecase(t, &fakeAppointmentRepository{}, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)
		_, err := uc.Accept(context.Background(), primitive.NewObjectID().Hex(), &models.Session{UserID: attendee.Hex()})
		assertCustomErrorStatus(t, err, 404)
	})

	t.Run("already accepted wins over eligibility", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted)}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)
		_, err := uc.Accept(context.Background(), repo.appointment.ID.Hex(), &models.Session{UserID: accepted.Hex()})
		assertCustomErrorStatus(t, err, 409)
		assert.Zero(t, repo.addAcceptanceCalls)
	})

	t.Run("caller outside attendance is not eligible", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted)}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)
		_, err := uc.Accept(context.Background(), repo.appointment.ID.Hex(), &models.Session{UserID: primitive.NewObjectID().Hex()})
		assertCustomErrorStatus(t, err, 403)
	})

	t.Run("successful accept records both sides", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted), addAcceptanceResult: true}
		userRepo := &fakeUserRepository{}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, userRepo, &fakeLocker{}, now)

		result, err := uc.Accept(context.Background(), repo.appointment.ID.Hex(), &models.Session{UserID: attendee.Hex()})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.addAcceptanceCalls)
		assert.Equal(t, []string{attendee.Hex()}, userRepo.addAppointmentCalls)
		assert.Contains(t, result.AcceptedBy, attendee.Hex())
	})

	t.Run("lost race surfaces as conflict", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted), addAcceptanceResult: false}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{}, now)
		_, err := uc.Accept(context.Background(), repo.appointment.ID.Hex(), &models.Session{UserID: attendee.Hex()})
		assertCustomErrorStatus(t, err, 409)
	})
}

func TestAppointmentUsecase_SubmitRating(t *testing.T) {
	loc, _ := time.LoadLocation("Africa/Cairo")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	attendee := primitive.NewObjectID()
	accepted := primitive.NewObjectID()

	ratingRequest := &requests.SubmitRating{
		Comment: "great session",
		Reviews: []requests.Review{
			{Title: "punctuality", Points: 4},
			{Title: "preparation", Points: 5},
		},
	}

	t.Run("rejected outside the active window", func(t *testing.T) {
		appointment := activeAppointment(attendee, accepted)
		appointment.Status = models.StatusPending
		repo := &fakeAppointmentRepository{appointment: appointment}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{acquired: true}, now)

		_, err := uc.SubmitRating(context.Background(), appointment.ID.Hex(), &models.Session{UserID: accepted.Hex()}, ratingRequest)
		assertCustomErrorStatus(t, err, 400)
		assert.Zero(t, repo.appendCalls)
	})

	t.Run("rater must have accepted", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted)}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{acquired: true}, now)

		_, err := uc.SubmitRating(context.Background(), repo.appointment.ID.Hex(), &models.Session{UserID: attendee.Hex()}, ratingRequest)
		assertCustomErrorStatus(t, err, 403)
	})

	t.Run("admin may rate without accepting", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted), appendResult: true}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{acquired: true}, now)

		adminSession := &models.Session{UserID: primitive.NewObjectID().Hex(), Role: constvars.RoleTypeAdmin}
		_, err := uc.SubmitRating(context.Background(), repo.appointment.ID.Hex(), adminSession, ratingRequest)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.appendCalls)
	})

	t.Run("held lock rejects the second submit", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted)}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{acquired: false}, now)

		_, err := uc.SubmitRating(context.Background(), repo.appointment.ID.Hex(), &models.Session{UserID: accepted.Hex()}, ratingRequest)
		assertCustomErrorStatus(t, err, 409)
		assert.Zero(t, repo.appendCalls)
	})

	t.Run("single-day submit completes the appointment", func(t *testing.T) {
		appointment := activeAppointment(attendee, accepted)
		appointment.AcceptedBy = []primitive.ObjectID{accepted, attendee}
		repo := &fakeAppointmentRepository{appointment: appointment, appendResult: true}
		locker := &fakeLocker{acquired: true}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, locker, now)

		result, err := uc.SubmitRating(context.Background(), appointment.ID.Hex(), &models.Session{UserID: accepted.Hex()}, ratingRequest)
		require.NoError(t, err)

		assert.True(t, repo.appendWindow.SingleDay)
		assert.True(t, repo.appendMarkComplete)
		assert.Equal(t, string(models.StatusCompleted), result.Status)
		assert.Equal(t, 1, locker.unlockCalls)

		require.Len(t, repo.appendEntry.Users, 2)
		for _, user := range repo.appendEntry.Users {
			assert.Equal(t, 9, user.CumulativeRatingPoints)
			assert.Equal(t, "great session", user.Comment)
		}
	})

	t.Run("ranged appointment guards per civil day and stays active", func(t *testing.T) {
		appointment := activeAppointment(attendee, accepted)
		appointment.EndingDate = "2026-03-12"
		repo := &fakeAppointmentRepository{appointment: appointment, appendResult: true}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{acquired: true}, now)

		result, err := uc.SubmitRating(context.Background(), appointment.ID.Hex(), &models.Session{UserID: accepted.Hex()}, ratingRequest)
		require.NoError(t, err)

		assert.False(t, repo.appendWindow.SingleDay)
		assert.False(t, repo.appendMarkComplete)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), repo.appendWindow.DayStart)
		assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), repo.appendWindow.DayEnd)
		assert.Equal(t, string(models.StatusActive), result.Status)
	})

	t.Run("duplicate single-day rating conflicts", func(t *testing.T) {
		repo := &fakeAppointmentRepository{appointment: activeAppointment(attendee, accepted), appendResult: false}
		uc := newTestUsecase(t, repo, &fakeGroupRepository{}, &fakeUserRepository{}, &fakeLocker{acquired: true}, now)

		_, err := uc.SubmitRating(context.Background(), repo.appointment.ID.Hex(), &models.Session{UserID: accepted.Hex()}, ratingRequest)
		assertCustomErrorStatus(t, err, 409)
	})
}
