package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingUserIDKey        = "user_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingGroupIDKey       = "group_id"
	LoggingStatusKey        = "status"
	LoggingRedisKey         = "redis_key"
	LoggingLockValueKey     = "lock_value"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingRemoteAddrKey    = "remote_addr"
)
