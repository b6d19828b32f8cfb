package constvars

type contextKey string

const (
	CONTEXT_SESSION_KEY    contextKey = "session"
	CONTEXT_SESSION_ID_KEY contextKey = "session_id"
	CONTEXT_REQUEST_ID_KEY contextKey = "request_id"
)

const (
	RoleTypeUser       = "user"
	RoleTypeAdmin      = "admin"
	RoleTypeSuperAdmin = "super-admin"
)

const (
	MongoCollectionUsers        = "users"
	MongoCollectionGroups       = "groups"
	MongoCollectionAppointments = "appointments"
)

const (
	// DefaultStartingTime and DefaultEndingTime bound a civil day when an
	// appointment carries no explicit times.
	DefaultStartingTime = "00:00"
	DefaultEndingTime   = "23:59"

	CivilDateLayout     = "2006-01-02"
	CivilTimeLayout     = "15:04"
	CivilDateTimeLayout = "2006-01-02 15:04"
)

const (
	RatingSubmitLockKeyFormat = "rating:%s:%s"
	StatusSweepLeaderLockKey  = "statussweep:leader"
)

const AppPaginationUrlFormat = "%s?page=%d&pageSize=%d"
