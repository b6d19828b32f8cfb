package models

import (
	"mawaid-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGroupAuthorizationPolicy(t *testing.T) {
	groupAdmin := primitive.NewObjectID()
	group := &Group{Admin: groupAdmin}

	testCases := []struct {
		name          string
		session       *Session
		canAdminister bool
		canReassign   bool
	}{
		{
			name:          "super admin may do everything",
			session:       &Session{UserID: primitive.NewObjectID().Hex(), Role: constvars.RoleTypeSuperAdmin},
			canAdminister: true,
			canReassign:   true,
		},
		{
			name:          "group's own admin may do everything",
			session:       &Session{UserID: groupAdmin.Hex(), Role: constvars.RoleTypeAdmin},
			canAdminister: true,
			canReassign:   true,
		},
		{
			name:          "global admin of another group may administer but not reassign",
			session:       &Session{UserID: primitive.NewObjectID().Hex(), Role: constvars.RoleTypeAdmin},
			canAdminister: true,
			canReassign:   false,
		},
		{
			name:          "plain user may do neither",
			session:       &Session{UserID: primitive.NewObjectID().Hex(), Role: constvars.RoleTypeUser},
			canAdminister: false,
			canReassign:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.canAdminister, CanAdministerGroup(tc.session, group))
			assert.Equal(t, tc.canReassign, CanReassignGroupAdmin(tc.session, group))
		})
	}
}

func TestAppointmentStatus(t *testing.T) {
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusExpired.Terminal())

	assert.True(t, StatusActive.Valid())
	assert.False(t, AppointmentStatus("cancelled").Valid())
}

func TestAppointmentSingleDay(t *testing.T) {
	appointment := &Appointment{StartingDate: "2026-03-10"}
	assert.True(t, appointment.SingleDay())

	appointment.EndingDate = "2026-03-10"
	assert.True(t, appointment.SingleDay())

	appointment.EndingDate = "2026-03-11"
	assert.False(t, appointment.SingleDay())
}
