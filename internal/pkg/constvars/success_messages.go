package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// User-related messages
	UserCreatedSuccess = "user created successfully"
	UserUpdatedSuccess = "user updated successfully"
	UserDeletedSuccess = "user deleted successfully"
	ProfileGetSuccess  = "get profile successfully"

	// Auth messages
	LoginSuccess  = "successfully login"
	LogoutSuccess = "successfully logout"

	// Appointment messages
	AppointmentCreatedSuccess  = "appointment created successfully"
	AppointmentUpdatedSuccess  = "appointment updated successfully"
	AppointmentDeletedSuccess  = "appointment deleted successfully"
	AppointmentGetSuccess      = "appointments retrieved successfully"
	AppointmentAcceptedSuccess = "appointment accepted successfully"
	AppointmentStatusSuccess   = "appointment status updated successfully"
	RatingSubmittedSuccess     = "rating submitted successfully"

	// Group messages
	GroupCreatedSuccess        = "group created successfully"
	GroupUpdatedSuccess        = "group updated successfully"
	GroupDeletedSuccess        = "group deleted successfully"
	GroupGetSuccess            = "groups retrieved successfully"
	GroupAdminGetSuccess       = "admin retrieved successfully"
	GroupAdminUpdatedSuccess   = "admin updated successfully"
	GroupMembersGetSuccess     = "members retrieved successfully"
	GroupMembersAddedSuccess   = "members added to group successfully"
	GroupMembersRemovedSuccess = "specified members removed from group"
	GroupAppointmentsSuccess   = "group appointments retrieved successfully"
)
