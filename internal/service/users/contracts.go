package users

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role, driverCode *string) error
}

// DriverRepository интерфейс репозитория водителей
type DriverRepository interface {
	NextDriverNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, driver *domain.Driver) (*domain.Driver, error)
	SetActive(ctx context.Context, code string, active bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
