package contracts

import (
	"context"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/dto/requests"
	"mawaid-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*responses.Appointment, error)
	FindForUser(ctx context.Context, session *models.Session) ([]responses.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	FindAll(ctx context.Context, filter AppointmentListFilter, page, pageSize int) ([]responses.Appointment, int, error)
	Update(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error)
	Delete(ctx context.Context, appointmentID string) error
	ChangeStatus(ctx context.Context, appointmentID string, request *requests.ChangeAppointmentStatus) (*responses.Appointment, error)
	Accept(ctx context.Context, appointmentID string, session *models.Session) (*responses.Appointment, error)
	SubmitRating(ctx context.Context, appointmentID string, session *models.Session, request *requests.SubmitRating) (*responses.Appointment, error)
}

// AppointmentListFilter narrows the admin listing. StartingDate matches one
// civil date exactly; FromDate/ToDate bound startingDate inclusively. An
// exact date takes precedence over the range bounds.
type AppointmentListFilter struct {
	Status       string
	StartingDate string
	FromDate     string
	ToDate       string
}

// RatingWindow narrows the duplicate-rating guard used by AppendRatingEntry:
// the appointment's whole lifetime for single-day appointments, the current
// civil day for ranged ones.
type RatingWindow struct {
	SingleDay bool
	DayStart  time.Time
	DayEnd    time.Time
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAppointmentsByAttendee(ctx context.Context, userID string) ([]models.Appointment, error)
	FindAppointments(ctx context.Context, filter AppointmentListFilter, page, pageSize int) ([]models.Appointment, int64, error)
	FindAppointmentsByStatuses(ctx context.Context, statuses []models.AppointmentStatus) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error
	// AddAcceptance atomically adds userID to acceptedBy, guarded so the user
	// must be in attendance and not yet accepted. Returns false when the
	// guarded update matched no document.
	AddAcceptance(ctx context.Context, appointmentID, userID string) (bool, error)
	// AppendRatingEntry atomically appends the ledger entry unless the rater
	// already has an entry inside the window; markCompleted also flips the
	// status to completed. Returns false when the guard rejected the append.
	AppendRatingEntry(ctx context.Context, appointmentID string, entry *models.RatingLedgerEntry, window RatingWindow, markCompleted bool) (bool, error)
	DeleteAppointmentByID(ctx context.Context, appointmentID string) error
}
