package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// PasswordHasher хеширование пароля клиента-заглушки
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// StatsCache сброс кеша статистики после появления нового бронирования
type StatsCache interface {
	Invalidate(ctx context.Context) error
}

// Notifier рассылка событий о новых бронированиях
type Notifier interface {
	NotifyNewBooking(booking *domain.Booking)
}

// Metrics доменные метрики
type Metrics interface {
	RecordBookingCreated(serviceType string)
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
