package appointments

import (
	"mawaid-service/internal/app/models"
	"mawaid-service/internal/pkg/constvars"
	"mawaid-service/internal/pkg/utils"
	"time"
)

// ResolveStatus derives the time-based status of an appointment at the given
// instant. Pending appointments wait for an explicit admin decision and
// rejected/completed are terminal, so all three pass through untouched. The
// schedule window is inclusive on both ends; missing times default to the
// whole civil day and a missing ending date collapses the range onto the
// starting date. Unparseable schedule fields leave the stored status as is.
func ResolveStatus(appointment *models.Appointment, now time.Time, loc *time.Location) models.AppointmentStatus {
	current := appointment.Status
	if current == models.StatusPending || current.Terminal() {
		return current
	}

	startingTime := appointment.StartingTime
	if startingTime == "" {
		startingTime = constvars.DefaultStartingTime
	}
	endingDate := appointment.EndingDate
	if endingDate == "" {
		endingDate = appointment.StartingDate
	}
	endingTime := appointment.EndingTime
	if endingTime == "" {
		endingTime = constvars.DefaultEndingTime
	}

	start, err := utils.CombineCivilDateTime(appointment.StartingDate, startingTime, loc)
	if err != nil {
		return current
	}
	end, err := utils.CombineCivilDateTime(endingDate, endingTime, loc)
	if err != nil {
		return current
	}

	switch {
	case now.Before(start):
		return models.StatusInactive
	case now.After(end):
		return models.StatusExpired
	default:
		return models.StatusActive
	}
}
