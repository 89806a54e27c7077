package constants

// Centralized constants for headers, env keys, routes and messages.
const (
	// Environment variable keys
	EnvConfigPath    = "BATTLE_CONFIG"
	EnvDBPath        = "BATTLE_DB"
	EnvServerAddress = "BATTLE_ADDR"
	EnvActionTimeout = "BATTLE_ACTION_TIMEOUT"
	EnvScanInterval  = "BATTLE_SCAN_INTERVAL"

	// HTTP headers and content types
	HeaderTrainerID   = "X-Trainer-ID"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Gin context key holding the calling trainer id
	ContextTrainerID = "trainerID"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteSpecies       = "/species"
	RouteMoves         = "/moves"
	RouteBattles       = "/battles"
	RouteBattleByID    = "/battles/:battleID"
	RouteBattleAction  = "/battles/:battleID/actions"
	RouteBattleEvents  = "/battles/:battleID/events"
	RouteTrainerStats  = "/trainers/:trainerID/stats"
	RouteVersion       = "/version"
	RouteHealth        = "/healthz"
	ParamBattleID      = "battleID"
	ParamTrainerID     = "trainerID"
	QueryEventsSince   = "since"
	DefaultEventsLimit = 500
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyCode    = "code"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest        = "Invalid request"
	ErrInvalidBattleID       = "Invalid battle ID"
	ErrBattleNotFound        = "Battle not found"
	ErrTrainerRequired       = "X-Trainer-ID header is required"
	ErrTrainerMismatch       = "Trainer does not own this battle"
	ErrFailedCreateBattle    = "Failed to create battle"
	ErrFailedFetchBattle     = "Failed to fetch battle"
	ErrFailedFetchEvents     = "Failed to fetch events"
	ErrFailedFetchStats      = "Failed to fetch stats"
	ErrFailedStoreAction     = "Failed to store action"
	ErrBattleNotInProgress   = "Battle is not in progress"
	ErrInvalidSince          = "since must be a non-negative integer"
	ErrUnknownReferenceData  = "Unknown species, move or item"
	ErrBattleStateCorrupted  = "Battle state is corrupted"
	ErrActionRejected        = "Action rejected"
	ErrInvalidTrainerIDRegex = "Trainer ID must be 1-64 characters of letters, digits, '-', '_' or '.'"
)

// Logging field names
const (
	LogFieldBattleID  = "battle_id"
	LogFieldTrainerID = "trainer_id"
	LogFieldRound     = "round"
	LogFieldOutcome   = "outcome"
	LogFieldCode      = "code"
	LogFieldTarget    = "target"
	LogFieldPath      = "path"
	LogFieldAddr      = "addr"
	LogFieldCount     = "count"
)
