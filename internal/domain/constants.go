package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes   = 30
	DefaultMaxConcurrentBookings = 2
	DefaultAdvanceBookingDays    = 0 // 0 = unlimited
	DefaultOpenTime              = "10:00"
	DefaultCloseTime             = "20:00"
	DefaultTheme                 = "rose"
	DefaultCurrency              = "INR"
)

// Business validation constants
const (
	MinRating                   = 1
	MaxRating                   = 5
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinConcurrentBookings       = 1
	MaxConcurrentBookings       = 100
	MaxAdvanceBookingDays       = 365
	MaxNotesLength              = 500
	MaxCommentLength            = 2000
	MaxCancellationReasonLength = 500
	MinPasswordLength           = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
