package domain

// Default configuration values
const (
	DefaultStepMinutes            = 30
	DefaultMaxConcurrentPerSlot   = 1
	DefaultServiceDurationMinutes = 45 // used when a service has no positive duration
	DefaultRequestDurationMinutes = 30 // slot listing without selected services
)

// Business validation constants
const (
	MinStepMinutes        = 5
	MaxStepMinutes        = 240
	MaxConcurrentPerSlot  = 100
	MaxNotesLength        = 500
	MaxServicesPerBooking = 10
	MaxDurationMinutes    = 24 * 60 // longest interval a single day can hold
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Role names coming from the user service
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)
