package appointments

import (
	"context"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	sweepLeaderLockTTL = 5 * time.Minute
	sweepTimeout       = 2 * time.Minute
)

// StatusSweeper periodically persists the clock-derived status of every
// appointment the clock can still move. The resolver output is what clients
// see regardless, so the sweep only keeps stored documents from drifting too
// far behind for status-filtered queries.
type StatusSweeper struct {
	AppointmentRepository contracts.AppointmentRepository
	LockerService         contracts.LockerService
	Log                   *zap.Logger
	Location              *time.Location

	now func() time.Time
}

func NewStatusSweeper(
	appointmentRepository contracts.AppointmentRepository,
	lockerService contracts.LockerService,
	logger *zap.Logger,
	location *time.Location,
) *StatusSweeper {
	return &StatusSweeper{
		AppointmentRepository: appointmentRepository,
		LockerService:         lockerService,
		Log:                   logger,
		Location:              location,
		now:                   time.Now,
	}
}

// Start schedules the sweep on the given cron spec and returns a stop
// function that waits for a running sweep to finish.
func (s *StatusSweeper) Start(cronSpec string) (func(), error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	return func() {
		<-scheduler.Stop().Done()
	}, nil
}

// Sweep runs one pass. A redis leader lock keeps concurrent replicas from
// sweeping the same documents; losing the lock is not an error, another
// instance is already on it.
func (s *StatusSweeper) Sweep(ctx context.Context) {
	acquired, lockValue, err := s.LockerService.TryLock(ctx, constvars.StatusSweepLeaderLockKey, sweepLeaderLockTTL)
	if err != nil {
		s.Log.Error("statusSweeper.Sweep failed acquiring leader lock", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := s.LockerService.Unlock(ctx, constvars.StatusSweepLeaderLockKey, lockValue); err != nil {
			s.Log.Warn("statusSweeper.Sweep failed releasing leader lock", zap.Error(err))
		}
	}()

	refreshDone := make(chan struct{})
	defer close(refreshDone)
	go s.refreshLeaderLock(ctx, lockValue, refreshDone)

	// pending waits for an admin decision and expired cannot move again
	appointments, err := s.AppointmentRepository.FindAppointmentsByStatuses(ctx, []models.AppointmentStatus{
		models.StatusInactive,
		models.StatusActive,
	})
	if err != nil {
		s.Log.Error("statusSweeper.Sweep failed listing appointments", zap.Error(err))
		return
	}

	now := s.now()
	updated := 0
	for i := range appointments {
		appointment := &appointments[i]
		resolved := ResolveStatus(appointment, now, s.Location)
		if resolved == appointment.Status {
			continue
		}
		if err := s.AppointmentRepository.UpdateAppointmentStatus(ctx, appointment.ID.Hex(), resolved); err != nil {
			s.Log.Error("statusSweeper.Sweep failed persisting status",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID.Hex()),
				zap.Error(err),
			)
			continue
		}
		updated++
	}

	s.Log.Info("statusSweeper.Sweep finished",
		zap.Int("candidates", len(appointments)),
		zap.Int("updated", updated),
	)
}

func (s *StatusSweeper) refreshLeaderLock(ctx context.Context, lockValue string, done <-chan struct{}) {
	ticker := time.NewTicker(sweepLeaderLockTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.LockerService.Refresh(ctx, constvars.StatusSweepLeaderLockKey, lockValue, sweepLeaderLockTTL); err != nil {
				s.Log.Warn("statusSweeper.Sweep failed refreshing leader lock", zap.Error(err))
			}
		}
	}
}
