package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidServiceType возвращается при некорректном типе услуги
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// FindAllRequest фильтры списка бронирований. Date сравнивается с календарным днем создания.
type FindAllRequest struct {
	Status      *string    `json:"status,omitempty"`
	ServiceType *string    `json:"serviceType,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	DriverID    *int64     `json:"driverId,omitempty"` // ID пользователя-водителя
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *FindAllRequest) ToDomainFilter() (domain.BookingFilter, error) {
	var filter domain.BookingFilter

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.ServiceType != nil {
		serviceType, err := ToDomainServiceType(*r.ServiceType)
		if err != nil {
			return filter, err
		}
		filter.ServiceType = &serviceType
	}

	if r.Date != nil {
		day := domain.DayRange(*r.Date)
		filter.CreatedWithin = &day
	}

	filter.DriverID = r.DriverID
	return filter, nil
}

// UpdateStatusRequest смена статуса с дополнительными полями
type UpdateStatusRequest struct {
	Status        string   `json:"status"`
	DriverNotes   *string  `json:"driverNotes,omitempty"`
	ActualPrice   *float64 `json:"actualPrice,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	PaymentStatus *string  `json:"paymentStatus,omitempty"`
}

// StatsRequest период статистики, обе границы включительные и необязательные
type StatsRequest struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Response модели

// UserSummaryResponse данные клиента или водителя в бронировании
type UserSummaryResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	DriverID  *string `json:"driverId,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	BookingID    string `json:"bookingId"`
	CustomerID   int64  `json:"customerId"`
	DriverUserID *int64 `json:"driverUserId,omitempty"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`

	ServiceType         string  `json:"serviceType"`
	BagCount            string  `json:"bagCount"`
	UrgentPickup        bool    `json:"urgentPickup"`
	PreferredDate       *string `json:"preferredDate,omitempty"` // "2025-10-15"
	PreferredTime       *string `json:"preferredTime,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	Priority            string  `json:"priority"`

	EstimatedPrice float64  `json:"estimatedPrice"`
	ActualPrice    *float64 `json:"actualPrice,omitempty"`

	Status           string     `json:"status"`
	PaymentStatus    string     `json:"paymentStatus"`
	PaymentMethod    *string    `json:"paymentMethod,omitempty"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	DriverNotes      *string    `json:"driverNotes,omitempty"`

	Customer *UserSummaryResponse `json:"customer,omitempty"`
	Driver   *UserSummaryResponse `json:"driver,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse агрегаты по бронированиям
type StatsResponse struct {
	TotalBookings     int64   `json:"totalBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
	CompletedBookings int64   `json:"completedBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	EmergencyBookings int64   `json:"emergencyBookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		BookingID:           b.BookingCode,
		CustomerID:          b.CustomerID,
		DriverUserID:        b.DriverID,
		FirstName:           b.Customer.FirstName,
		LastName:            b.Customer.LastName,
		Email:               b.Customer.Email,
		Phone:               b.Customer.Phone,
		Address:             b.Customer.Address,
		City:                b.Customer.City,
		ZipCode:             b.Customer.ZipCode,
		ServiceType:         string(b.ServiceType),
		BagCount:            string(b.BagCount),
		UrgentPickup:        b.UrgentPickup,
		PreferredTime:       b.PreferredTime,
		SpecialInstructions: b.SpecialInstructions,
		Notes:               b.Notes,
		Priority:            string(b.Priority),
		EstimatedPrice:      b.EstimatedPrice,
		ActualPrice:         b.ActualPrice,
		Status:              string(b.Status),
		PaymentStatus:       string(b.PaymentStatus),
		PaymentMethod:       b.PaymentMethod,
		PaymentReference:    b.PaymentReference,
		CompletedAt:         b.CompletedAt,
		DriverNotes:         b.DriverNotes,
		Customer:            fromUserSummary(b.CustomerUser),
		Driver:              fromUserSummary(b.DriverUser),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	if b.PreferredDate != nil {
		date := b.PreferredDate.Format(domain.DateFormat)
		resp.PreferredDate = &date
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует агрегаты в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	if s == nil {
		return &StatsResponse{}
	}
	return &StatsResponse{
		TotalBookings:     s.TotalBookings,
		TotalRevenue:      s.TotalRevenue,
		CompletedBookings: s.CompletedBookings,
		PendingBookings:   s.PendingBookings,
		EmergencyBookings: s.EmergencyBookings,
	}
}

func fromUserSummary(u *domain.UserSummary) *UserSummaryResponse {
	if u == nil {
		return nil
	}
	return &UserSummaryResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		DriverID:  u.DriverCode,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainServiceType конвертирует строку в domain.ServiceType с валидацией
func ToDomainServiceType(serviceType string) (domain.ServiceType, error) {
	t := domain.ServiceType(serviceType)
	if !t.IsValid() {
		return "", ErrInvalidServiceType
	}
	return t, nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return s, nil
}
