package drivers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// DriverRepository интерфейс репозитория водителей
type DriverRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Driver, error)
	List(ctx context.Context, filter domain.DriverFilter) ([]*domain.Driver, error)
	UpdateStatus(ctx context.Context, code string, status domain.DriverStatus) error
	UpdateLocation(ctx context.Context, code string, lat, lng float64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// Notifier рассылка событий о смене статуса водителя
type Notifier interface {
	NotifyDriverStatusChange(driverCode string, status domain.DriverStatus)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
