package create_driver

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// DriverRepository интерфейс репозитория водителей
type DriverRepository interface {
	NextDriverNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, driver *domain.Driver) (*domain.Driver, error)
}

// PasswordHasher хеширование пароля водителя
type PasswordHasher interface {
	Hash(password string) (string, error)
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
