package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusRejected  AppointmentStatus = "rejected"
	StatusInactive  AppointmentStatus = "inactive"
	StatusActive    AppointmentStatus = "active"
	StatusExpired   AppointmentStatus = "expired"
	StatusCompleted AppointmentStatus = "completed"
)

// Terminal statuses are admin- or rating-driven and must never be overridden
// by the clock.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRejected, StatusInactive, StatusActive, StatusExpired, StatusCompleted:
		return true
	}
	return false
}

type Appointment struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	CreatorID    primitive.ObjectID   `bson:"creatorId"`
	GroupIDs     []primitive.ObjectID `bson:"groups"`
	StartingDate string               `bson:"startingDate"`
	EndingDate   string               `bson:"endingDate,omitempty"`
	StartingTime string               `bson:"startingTime,omitempty"`
	EndingTime   string               `bson:"endingTime,omitempty"`
	Status       AppointmentStatus    `bson:"status"`
	Attendance   []primitive.ObjectID `bson:"attendance"`
	AcceptedBy   []primitive.ObjectID `bson:"acceptedBy"`
	Rating       []RatingLedgerEntry  `bson:"rating"`
	TimeModel    `bson:",inline"`
}

// SingleDay reports whether the appointment spans exactly one civil day, which
// decides the rating eligibility window.
func (a *Appointment) SingleDay() bool {
	return a.EndingDate == "" || a.EndingDate == a.StartingDate
}

func (a *Appointment) HasAttendee(userID primitive.ObjectID) bool {
	for _, attendee := range a.Attendance {
		if attendee == userID {
			return true
		}
	}
	return false
}

func (a *Appointment) HasAccepted(userID primitive.ObjectID) bool {
	for _, accepted := range a.AcceptedBy {
		if accepted == userID {
			return true
		}
	}
	return false
}

// RatingLedgerEntry is one rater's submitted batch of per-title reviews, tied
// to the accepted attendee set at submission time.
type RatingLedgerEntry struct {
	RatedBy  primitive.ObjectID `bson:"ratedBy"`
	HasRated bool               `bson:"hasRated"`
	RatedAt  time.Time          `bson:"ratedAt"`
	Users    []RatedUserEntry   `bson:"users"`
}

type RatedUserEntry struct {
	RatedUser              primitive.ObjectID `bson:"ratedUser"`
	CumulativeRatingPoints int                `bson:"cumulativeRatingPoints"`
	Comment                string             `bson:"comment,omitempty"`
	Reviews                []Review           `bson:"reviews"`
}

type Review struct {
	Title  string `bson:"title"`
	Points int    `bson:"points"`
}
