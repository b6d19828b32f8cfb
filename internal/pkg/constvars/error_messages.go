package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"datetime": "must match the expected date or time format",
	"base64":   "must be a valid base64 string",
	"password": "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gte":   true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "cannot process your request"
	ErrClientNotAuthorized                 = "you are not allowed to access this route"
	ErrClientNotLoggedIn                   = "you are not logged in, please login first"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientSuperAdminAlreadyExists       = "a super admin already exists"
	ErrClientInvalidImageFormat            = "invalid or unsupported image"
	ErrClientServerLongRespond             = "server takes too long to respond"

	ErrClientUserNotFound        = "user not found"
	ErrClientGroupNotFound       = "group not found"
	ErrClientAppointmentNotFound = "appointment not found"

	ErrClientNotGroupAdmin        = "only group admins or super admins can perform this action"
	ErrClientNotReassignAllowed   = "only super admins or the current group admin can update the admin"
	ErrClientAdminNotMember       = "new admin must be a member of the group"
	ErrClientMembersAlreadyInside = "all specified users are already members of the group"
	ErrClientNoMembersRemoved     = "no specified members were removed"

	ErrClientStartingDateInPast    = "cannot create an appointment in the past or for the current time"
	ErrClientEndingBeforeStarting  = "ending date must be equal to or after starting date"
	ErrClientAlreadyAccepted       = "you have already accepted this appointment"
	ErrClientNotInvited            = "you are not part of this appointment's attendance"
	ErrClientNotAcceptedAttendee   = "only attendees who accepted the appointment can rate"
	ErrClientRatingNotActive       = "rating is only allowed while the appointment is active"
	ErrClientAlreadyRated          = "you have already rated this appointment"
	ErrClientAlreadyRatedToday     = "you have already rated this appointment today"
	ErrClientRatingInProgress      = "another rating submission is in progress, please retry"
	ErrClientInvalidStatusChange   = "invalid appointment status"
)

// Error messages for developers
const (
	ErrDevValidationFailed        = "Request validation failed"
	ErrDevCannotParseJSON         = "Failed to parse JSON body"
	ErrDevURLParamIDMissing       = "Missing or empty URL parameter: %s"
	ErrDevImageValidationFailed   = "Image validation failed"
	ErrDevFailedToHashPassword    = "Failed to hash password with bcrypt"
	ErrDevServerDeadlineExceeded  = "Operation exceeded its deadline"
	ErrDevServerProcess           = "Internal process failed"
	ErrDevCannotMarshalJSON       = "Failed to marshal value to JSON"

	ErrDevAuthTokenMissing          = "Authorization token is missing"
	ErrDevAuthTokenInvalid          = "Authorization token is invalid"
	ErrDevAuthTokenInvalidOrExpired = "Authorization token is invalid or expired"
	ErrDevAuthGenerateToken         = "Failed to generate JWT"
	ErrDevAuthSigningMethod         = "Unexpected JWT signing method"
	ErrDevAuthInvalidSession        = "Session is missing or expired"
	ErrDevInvalidCredentials        = "Email and password do not match any user"
	ErrDevRoleNotAllowed            = "Caller role is not allowed on this route"

	ErrDevUserNotExists        = "User does not exist"
	ErrDevGroupNotExists       = "Group does not exist"
	ErrDevAppointmentNotExists = "Appointment does not exist"
	ErrDevEmailAlreadyExists   = "Email already registered"
	ErrDevSuperAdminExists     = "A user with role super-admin already exists"

	ErrDevDBFailedToFindDocument     = "MongoDB failed to find document"
	ErrDevDBFailedToInsertDocument   = "MongoDB failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "MongoDB failed to update document"
	ErrDevDBFailedToDeleteDocument   = "MongoDB failed to delete document"
	ErrDevDBFailedToIterateDocuments = "MongoDB failed to iterate documents"
	ErrDevDBFailedToCountDocuments   = "MongoDB failed to count documents"
	ErrDevDBStringNotObjectID        = "String cannot be converted to ObjectID"

	ErrDevRedisSetData       = "Redis failed to set data"
	ErrDevRedisGetData       = "Redis failed to get data"
	ErrDevRedisDeleteData    = "Redis failed to delete data"
	ErrDevRedisGetNoData     = "Redis has no data for key %s"
	ErrDevRedisSetNX         = "Redis failed to set data with NX"
	ErrDevRedisExpire        = "Redis failed to set expiration"
	ErrDevRedisUnlock        = "Redis failed to release lock"

	ErrDevMinioFailedToCreateObject = "Minio failed to create object in bucket %s"

	ErrDevAttendanceGroupForbidden = "Caller cannot expand attendance from group %s"
	ErrDevAcceptConflict           = "Acceptance update matched no document, duplicate or ineligible"
	ErrDevRatingWindowConflict     = "Rating append matched no document, rater already rated within window"
	ErrDevRatingLockNotAcquired    = "Rating submission lock is held by another request"
	ErrDevStatusUnparseableBounds  = "Appointment has unparseable date or time bounds"
)
