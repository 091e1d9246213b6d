package domain

// Driver profile defaults
const (
	DefaultDriverRating = 4.5
	DefaultDriverStatus = DriverOffline
)

// Booking engine defaults
const (
	DefaultBookingCodeAttempts = 5
	MaxNotesLength             = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// FilterAll is the status filter value meaning "no filter"
const FilterAll = "all"
