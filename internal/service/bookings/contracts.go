package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, id int64, patch domain.BookingPatch) error
	AssignDriver(ctx context.Context, id int64, driverUserID int64, status domain.BookingStatus) error
	Stats(ctx context.Context, period domain.StatsRange) (*domain.BookingStats, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// StatsCache кеш агрегатов статистики. Get возвращает поколение кеша, Set пишет под ним.
type StatsCache interface {
	Get(ctx context.Context, period domain.StatsRange) (*domain.BookingStats, int64, error)
	Set(ctx context.Context, period domain.StatsRange, version int64, stats *domain.BookingStats) error
	Invalidate(ctx context.Context) error
}

// Notifier рассылка событий об изменении бронирований
type Notifier interface {
	NotifyStatusChange(booking *domain.Booking)
}

// Metrics доменные метрики
type Metrics interface {
	RecordStatusTransition(from, to string)
	RecordDriverAssigned()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
