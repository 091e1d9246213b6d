package domain

import "time"

// BookingStatus represents the lifecycle state of a pickup booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusScheduled  BookingStatus = "scheduled"
	StatusInProgress BookingStatus = "in-progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// ServiceType is the pickup category; it drives base price, priority and booking code prefix
type ServiceType string

const (
	ServiceRegular   ServiceType = "regular"
	ServiceEmergency ServiceType = "emergency"
	ServiceBulk      ServiceType = "bulk"
)

func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceRegular, ServiceEmergency, ServiceBulk:
		return true
	}
	return false
}

// BagCount is the declared volume bucket
type BagCount string

const (
	BagsUpTo5    BagCount = "1-5"
	BagsUpTo10   BagCount = "6-10"
	BagsElevenUp BagCount = "11+"
)

func (c BagCount) IsValid() bool {
	switch c {
	case BagsUpTo5, BagsUpTo10, BagsElevenUp:
		return true
	}
	return false
}

// Priority is a display classification, not a state machine input
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// PriorityFor derives booking priority from the service type
func PriorityFor(t ServiceType) Priority {
	if t == ServiceEmergency {
		return PriorityHigh
	}
	return PriorityMedium
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CustomerSnapshot is the contact data copied into the booking at creation time
type CustomerSnapshot struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	ZipCode   string
}

// FullName returns "First Last"
func (c CustomerSnapshot) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

// Booking represents one pickup request and its lifecycle
type Booking struct {
	ID          int64
	BookingCode string
	CustomerID  int64
	DriverID    *int64 // user id of the assigned driver

	Customer CustomerSnapshot

	ServiceType         ServiceType
	BagCount            BagCount
	UrgentPickup        bool
	PreferredDate       *time.Time
	PreferredTime       *string
	SpecialInstructions *string
	Notes               *string
	Priority            Priority

	EstimatedPrice float64
	ActualPrice    *float64

	Status           BookingStatus
	PaymentStatus    PaymentStatus
	PaymentMethod    *string
	PaymentReference *string
	CompletedAt      *time.Time
	DriverNotes      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined identity fields, filled on reads
	CustomerUser *UserSummary
	DriverUser   *UserSummary
}

// HasDriver reports whether a driver is assigned
func (b *Booking) HasDriver() bool {
	return b.DriverID != nil
}

// Earnings is the actual price when set, otherwise the estimate
func (b *Booking) Earnings() float64 {
	if b.ActualPrice != nil {
		return *b.ActualPrice
	}
	return b.EstimatedPrice
}

// BookingPatch lists the fields an update may touch; nil means "leave as is"
type BookingPatch struct {
	Status           *BookingStatus
	DriverNotes      *string
	ActualPrice      *float64
	PaymentMethod    *string
	PaymentStatus    *PaymentStatus
	PaymentReference *string
	CompletedAt      *time.Time
}

// IsEmpty reports whether the patch changes nothing
func (p BookingPatch) IsEmpty() bool {
	return p.Status == nil && p.DriverNotes == nil && p.ActualPrice == nil &&
		p.PaymentMethod == nil && p.PaymentStatus == nil && p.PaymentReference == nil &&
		p.CompletedAt == nil
}

// BookingFilter selects bookings for listings. Zero value matches everything.
type BookingFilter struct {
	Status      *BookingStatus
	ServiceType *ServiceType
	DriverID    *int64

	// CreatedWithin matches on created_at only
	CreatedWithin *TimeRange
	// PreferredOrCreatedWithin matches when preferred_date or created_at falls in the range
	PreferredOrCreatedWithin *TimeRange
}

// TimeRange is a half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// DayRange returns [midnight, next midnight) of day's calendar date in day's location
func DayRange(day time.Time) TimeRange {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// StatsRange bounds statistics by creation date. Both ends are inclusive calendar days; nil is open.
type StatsRange struct {
	From *time.Time
	To   *time.Time
}

// BookingStats is the aggregate returned by statistics queries. Zero value is the empty result.
type BookingStats struct {
	TotalBookings     int64
	TotalRevenue      float64
	CompletedBookings int64
	PendingBookings   int64
	EmergencyBookings int64
}
