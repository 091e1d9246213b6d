package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// EventType тип события, по которому клиент различает сообщения
type EventType string

const (
	EventNewBooking          EventType = "new-booking"
	EventBookingStatusUpdate EventType = "booking-status-update"
	EventDriverBookingUpdate EventType = "driver-booking-update"
	EventDriverStatusUpdate  EventType = "driver-status-update"
)

// RoomAdmin комната администраторов, в нее приходят смены статусов водителей
const RoomAdmin = "admin"

const driverRoomPrefix = "driver-"

// DriverRoom комната водителя (driver-D0001) для обновлений его бронирований
func DriverRoom(driverCode string) string {
	return driverRoomPrefix + driverCode
}

// ValidRoom сообщает, существует ли комната с таким именем
func ValidRoom(room string) bool {
	if room == RoomAdmin {
		return true
	}
	return strings.HasPrefix(room, driverRoomPrefix) &&
		domain.DriverCodePattern.MatchString(strings.TrimPrefix(room, driverRoomPrefix))
}

// Event конверт события для WebSocket клиентов и потока событий Kafka
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       EventType   `json:"type"`
	Room       string      `json:"room,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

func newEvent(eventType EventType, room string, payload interface{}, now time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Room:       room,
		OccurredAt: now,
		Payload:    payload,
	}
}

// BookingPayload представление бронирования в событиях
type BookingPayload struct {
	ID             int64    `json:"id"`
	BookingID      string   `json:"bookingId"`
	Status         string   `json:"status"`
	ServiceType    string   `json:"serviceType"`
	Priority       string   `json:"priority"`
	CustomerName   string   `json:"customerName"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	PreferredDate  *string  `json:"preferredDate,omitempty"`
	PreferredTime  *string  `json:"preferredTime,omitempty"`
	EstimatedPrice float64  `json:"estimatedPrice"`
	ActualPrice    *float64 `json:"actualPrice,omitempty"`
	PaymentStatus  string   `json:"paymentStatus"`
	DriverUserID   *int64   `json:"driverUserId,omitempty"`
	DriverID       *string  `json:"driverId,omitempty"`
	UpdatedAt      string   `json:"updatedAt"`
}

type DriverStatusPayload struct {
	DriverID string `json:"driverId"`
	Status   string `json:"status"`
}

func bookingPayload(b *domain.Booking) BookingPayload {
	p := BookingPayload{
		ID:             b.ID,
		BookingID:      b.BookingCode,
		Status:         string(b.Status),
		ServiceType:    string(b.ServiceType),
		Priority:       string(b.Priority),
		CustomerName:   b.Customer.FullName(),
		Address:        b.Customer.Address,
		City:           b.Customer.City,
		PreferredTime:  b.PreferredTime,
		EstimatedPrice: b.EstimatedPrice,
		ActualPrice:    b.ActualPrice,
		PaymentStatus:  string(b.PaymentStatus),
		DriverUserID:   b.DriverID,
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
	if b.PreferredDate != nil {
		date := b.PreferredDate.Format(domain.DateFormat)
		p.PreferredDate = &date
	}
	if b.DriverUser != nil {
		p.DriverID = b.DriverUser.DriverCode
	}
	return p
}

// driverRoomOf комната назначенного водителя, если известен его код
func driverRoomOf(b *domain.Booking) (string, bool) {
	if !b.HasDriver() || b.DriverUser == nil || b.DriverUser.DriverCode == nil {
		return "", false
	}
	return DriverRoom(*b.DriverUser.DriverCode), true
}
