package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	bookingModels "github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
)

var (
	// ErrInvalidDriverStatus возвращается при некорректном статусе водителя
	ErrInvalidDriverStatus = errors.New("invalid driver status")
)

// Request модели

// DriverBookingsRequest фильтры бронирований водителя.
// Status "all" равносилен отсутствию фильтра, Date сравнивается с желаемой датой или датой создания.
type DriverBookingsRequest struct {
	DriverID string     `json:"driverId"`
	Status   *string    `json:"status,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// UpdateStatusRequest смена статуса водителя
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateLocationRequest текущие координаты водителя
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Response модели

type LocationResponse struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type VehicleResponse struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
	Capacity     string `json:"capacity"`
}

type WorkingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type EmergencyContactResponse struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// DriverResponse водитель вместе с данными пользователя
type DriverResponse struct {
	ID        int64  `json:"id"`
	DriverID  string `json:"driverId"`
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Status           string                    `json:"status"`
	CurrentLocation  *LocationResponse         `json:"currentLocation,omitempty"`
	Rating           float64                   `json:"rating"`
	TotalRatings     int                       `json:"totalRatings"`
	TotalPickups     int                       `json:"totalPickups"`
	TotalEarnings    float64                   `json:"totalEarnings"`
	Vehicle          *VehicleResponse          `json:"vehicle,omitempty"`
	WorkingHours     *WorkingHoursResponse     `json:"workingHours,omitempty"`
	WorkingDays      []string                  `json:"workingDays"`
	EmergencyContact *EmergencyContactResponse `json:"emergencyContact,omitempty"`
	IsActive         bool                      `json:"isActive"`
	LastActiveAt     *time.Time                `json:"lastActiveAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DriverListResponse ответ со списком водителей
type DriverListResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

// DashboardDriver краткие данные водителя на панели
type DashboardDriver struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Status  string           `json:"status"`
	Rating  float64          `json:"rating"`
	Vehicle *VehicleResponse `json:"vehicle,omitempty"`
}

// TodaysStats итоги дня. PendingBookings включает pending и scheduled.
type TodaysStats struct {
	TotalBookings      int     `json:"totalBookings"`
	CompletedBookings  int     `json:"completedBookings"`
	PendingBookings    int     `json:"pendingBookings"`
	InProgressBookings int     `json:"inProgressBookings"`
	Earnings           float64 `json:"earnings"`
}

// DashboardResponse панель водителя за сегодня
type DashboardResponse struct {
	Driver      DashboardDriver                 `json:"driver"`
	TodaysStats TodaysStats                     `json:"todaysStats"`
	Bookings    []bookingModels.BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainDriver конвертирует domain модель в DTO
func FromDomainDriver(d *domain.Driver) *DriverResponse {
	if d == nil {
		return nil
	}

	resp := &DriverResponse{
		ID:            d.ID,
		DriverID:      d.DriverCode,
		UserID:        d.UserID,
		Status:        string(d.Status),
		Rating:        d.Rating,
		TotalRatings:  d.TotalRatings,
		TotalPickups:  d.TotalPickups,
		TotalEarnings: d.TotalEarnings,
		Vehicle:       fromVehicle(d.Vehicle),
		WorkingDays:   d.WorkingDays,
		IsActive:      d.IsActive,
		LastActiveAt:  d.LastActiveAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if resp.WorkingDays == nil {
		resp.WorkingDays = []string{}
	}

	if d.User != nil {
		resp.FirstName = d.User.FirstName
		resp.LastName = d.User.LastName
		resp.Email = d.User.Email
		resp.Phone = d.User.Phone
	}
	if d.CurrentLocation != nil {
		resp.CurrentLocation = &LocationResponse{
			Lat:       d.CurrentLocation.Lat,
			Lng:       d.CurrentLocation.Lng,
			UpdatedAt: d.CurrentLocation.UpdatedAt,
		}
	}
	if d.WorkingHours != nil {
		resp.WorkingHours = &WorkingHoursResponse{Start: d.WorkingHours.Start, End: d.WorkingHours.End}
	}
	if d.EmergencyContact != nil {
		resp.EmergencyContact = &EmergencyContactResponse{
			Name:         d.EmergencyContact.Name,
			Phone:        d.EmergencyContact.Phone,
			Relationship: d.EmergencyContact.Relationship,
		}
	}

	return resp
}

// FromDomainDriverList конвертирует список domain моделей в DTO
func FromDomainDriverList(drivers []*domain.Driver) *DriverListResponse {
	resp := &DriverListResponse{
		Drivers: make([]DriverResponse, 0, len(drivers)),
	}
	for _, d := range drivers {
		if driverResp := FromDomainDriver(d); driverResp != nil {
			resp.Drivers = append(resp.Drivers, *driverResp)
		}
	}
	return resp
}

// FromDomainDashboard конвертирует панель водителя в DTO
func FromDomainDashboard(d *domain.DriverDashboard) *DashboardResponse {
	resp := &DashboardResponse{
		Driver: DashboardDriver{
			ID:      d.Driver.DriverCode,
			Status:  string(d.Driver.Status),
			Rating:  d.Driver.Rating,
			Vehicle: fromVehicle(d.Driver.Vehicle),
		},
		TodaysStats: TodaysStats{
			TotalBookings:      d.Stats.TotalBookings,
			CompletedBookings:  d.Stats.CompletedBookings,
			PendingBookings:    d.Stats.PendingBookings,
			InProgressBookings: d.Stats.InProgressBookings,
			Earnings:           d.Stats.Earnings,
		},
		Bookings: bookingModels.FromDomainBookingList(d.Bookings).Bookings,
	}
	if d.Driver.User != nil {
		resp.Driver.Name = d.Driver.User.FullName()
	}
	return resp
}

func fromVehicle(v *domain.VehicleInfo) *VehicleResponse {
	if v == nil {
		return nil
	}
	return &VehicleResponse{
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		Capacity:     v.Capacity,
	}
}

// ToDomainDriverStatus конвертирует строку в domain.DriverStatus с валидацией
func ToDomainDriverStatus(status string) (domain.DriverStatus, error) {
	s := domain.DriverStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidDriverStatus
	}
	return s, nil
}
