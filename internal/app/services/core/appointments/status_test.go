package appointments

import (
	"mawaid-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cairo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)
	return loc
}

func TestResolveStatus_PendingAndTerminalPassThrough(t *testing.T) {
	loc := cairo(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)

	for _, status := range []models.AppointmentStatus{
		models.StatusPending,
		models.StatusRejected,
		models.StatusCompleted,
	} {
		appointment := &models.Appointment{
			Status:       status,
			StartingDate: "2026-03-10",
			StartingTime: "09:00",
			EndingTime:   "10:00",
		}
		assert.Equal(t, status, ResolveStatus(appointment, now, loc))
	}
}

func TestResolveStatus_SingleDayWindow(t *testing.T) {
	loc := cairo(t)
	appointment := &models.Appointment{
		Status:       models.StatusInactive,
		StartingDate: "2026-03-10",
		StartingTime: "09:00",
		EndingTime:   "10:00",
	}

	testCases := []struct {
		name     string
		now      time.Time
		expected models.AppointmentStatus
	}{
		{"before start", time.Date(2026, 3, 10, 8, 59, 0, 0, loc), models.StatusInactive},
		{"exactly at start", time.Date(2026, 3, 10, 9, 0, 0, 0, loc), models.StatusActive},
		{"inside window", time.Date(2026, 3, 10, 9, 30, 0, 0, loc), models.StatusActive},
		{"exactly at end", time.Date(2026, 3, 10, 10, 0, 0, 0, loc), models.StatusActive},
		{"after end", time.Date(2026, 3, 10, 10, 0, 1, 0, loc), models.StatusExpired},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveStatus(appointment, tc.now, loc))
		})
	}
}

func TestResolveStatus_DefaultsCoverWholeCivilDay(t *testing.T) {
	loc := cairo(t)
	appointment := &models.Appointment{
		Status:       models.StatusActive,
		StartingDate: "2026-03-10",
	}

	assert.Equal(t, models.StatusInactive,
		ResolveStatus(appointment, time.Date(2026, 3, 9, 23, 59, 0, 0, loc), loc))
	assert.Equal(t, models.StatusActive,
		ResolveStatus(appointment, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), loc))
	assert.Equal(t, models.StatusActive,
		ResolveStatus(appointment, time.Date(2026, 3, 10, 23, 59, 0, 0, loc), loc))
	assert.Equal(t, models.StatusExpired,
		ResolveStatus(appointment, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), loc))
}

func TestResolveStatus_RangedAppointment(t *testing.T) {
	loc := cairo(t)
	appointment := &models.Appointment{
		Status:       models.StatusInactive,
		StartingDate: "2026-03-10",
		EndingDate:   "2026-03-12",
		StartingTime: "09:00",
		EndingTime:   "17:00",
	}

	// The window runs continuously from the start on day one to the end on
	// the last day; it does not re-open each morning.
	assert.Equal(t, models.StatusActive,
		ResolveStatus(appointment, time.Date(2026, 3, 11, 3, 0, 0, 0, loc), loc))
	assert.Equal(t, models.StatusInactive,
		ResolveStatus(appointment, time.Date(2026, 3, 10, 8, 0, 0, 0, loc), loc))
	assert.Equal(t, models.StatusExpired,
		ResolveStatus(appointment, time.Date(2026, 3, 12, 17, 1, 0, 0, loc), loc))
}

func TestResolveStatus_TimezoneMatters(t *testing.T) {
	loc := cairo(t)
	appointment := &models.Appointment{
		Status:       models.StatusInactive,
		StartingDate: "2026-03-10",
		StartingTime: "09:00",
		EndingTime:   "10:00",
	}

	// 07:30 UTC is 09:30 in Cairo (UTC+2), so the appointment is active even
	// though the UTC clock reads before the starting time.
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, models.StatusActive, ResolveStatus(appointment, now, loc))
}

func TestResolveStatus_UnparseableScheduleKeepsStoredStatus(t *testing.T) {
	loc := cairo(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)

	appointment := &models.Appointment{
		Status:       models.StatusActive,
		StartingDate: "not-a-date",
	}
	assert.Equal(t, models.StatusActive, ResolveStatus(appointment, now, loc))

	appointment = &models.Appointment{
		Status:       models.StatusInactive,
		StartingDate: "2026-03-10",
		EndingDate:   "2026-13-99",
	}
	assert.Equal(t, models.StatusInactive, ResolveStatus(appointment, now, loc))
}

func TestResolveStatus_ProgressionOverTime(t *testing.T) {
	loc := cairo(t)
	appointment := &models.Appointment{
		Status:       models.StatusInactive,
		StartingDate: "2026-03-10",
		StartingTime: "09:00",
		EndingTime:   "10:00",
	}

	order := map[models.AppointmentStatus]int{
		models.StatusInactive: 0,
		models.StatusActive:   1,
		models.StatusExpired:  2,
	}

	previous := -1
	for now := time.Date(2026, 3, 10, 0, 0, 0, 0, loc); now.Day() == 10; now = now.Add(15 * time.Minute) {
		rank, ok := order[ResolveStatus(appointment, now, loc)]
		require.True(t, ok)
		assert.GreaterOrEqual(t, rank, previous, "status must never move backwards at %s", now)
		previous = rank
	}
}
