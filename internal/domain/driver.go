package domain

import (
	"fmt"
	"regexp"
	"time"
)

// DriverStatus represents driver availability
type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverOffline   DriverStatus = "offline"
)

func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverAvailable, DriverBusy, DriverOffline:
		return true
	}
	return false
}

// DriverCodePattern matches external driver ids
var DriverCodePattern = regexp.MustCompile(`^D\d{4}$`)

// FormatDriverCode formats a sequence number as D0001
func FormatDriverCode(n int64) string {
	return fmt.Sprintf("D%04d", n)
}

type Location struct {
	Lat       float64
	Lng       float64
	UpdatedAt time.Time
}

type VehicleInfo struct {
	Make         string
	Model        string
	Year         int
	LicensePlate string
	Capacity     string
}

// WorkingHours holds "HH:MM" bounds
type WorkingHours struct {
	Start string
	End   string
}

type EmergencyContact struct {
	Name         string
	Phone        string
	Relationship string
}

// Driver is the operational profile of a driver user
type Driver struct {
	ID               int64
	UserID           int64
	DriverCode       string
	Status           DriverStatus
	CurrentLocation  *Location
	Rating           float64
	TotalRatings     int
	TotalPickups     int
	TotalEarnings    float64
	Vehicle          *VehicleInfo
	WorkingHours     *WorkingHours
	WorkingDays      []string
	EmergencyContact *EmergencyContact
	IsActive         bool
	LastActiveAt     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// User is the joined identity, filled on reads
	User *User
}

// DriverFilter selects drivers for listings
type DriverFilter struct {
	Status     *DriverStatus
	ActiveOnly bool
}

// DashboardStats summarises a driver's bookings for one day
type DashboardStats struct {
	TotalBookings      int
	CompletedBookings  int
	PendingBookings    int
	InProgressBookings int
	Earnings           float64
}

// ComputeDashboardStats aggregates bookings already restricted to the day.
// Pending counts both pending and scheduled bookings.
func ComputeDashboardStats(bookings []*Booking) DashboardStats {
	stats := DashboardStats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case StatusCompleted:
			stats.CompletedBookings++
			stats.Earnings += b.Earnings()
		case StatusPending, StatusScheduled:
			stats.PendingBookings++
		case StatusInProgress:
			stats.InProgressBookings++
		}
	}
	return stats
}

// DriverDashboard is the driver's view of today
type DriverDashboard struct {
	Driver   *Driver
	Stats    DashboardStats
	Bookings []*Booking
}
