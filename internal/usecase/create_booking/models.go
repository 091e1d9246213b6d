package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// Request модель запроса на создание бронирования.
// Контактные данные копируются в бронирование и используются для поиска клиента по email.
type Request struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	ZipCode   string

	ServiceType         domain.ServiceType
	BagCount            domain.BagCount
	UrgentPickup        bool
	PreferredDate       *time.Time // Дата без времени
	PreferredTime       *string    // Интервал дня, например "morning"
	SpecialInstructions *string
	Notes               *string
}

// ImportRequest административный импорт бронирования с произвольным начальным состоянием
type ImportRequest struct {
	Request

	Status         domain.BookingStatus
	DriverUserID   *int64                // ID пользователя-водителя
	PaymentStatus  *domain.PaymentStatus // По умолчанию pending
	EstimatedPrice *float64              // Если не задана, считается по тарифу
	ActualPrice    *float64
}
