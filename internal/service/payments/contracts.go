package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PickupService/internal/domain"
	"github.com/m04kA/SMC-PickupService/internal/integrations/paymentgateway"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPaymentReference(ctx context.Context, reference string) (*domain.Booking, error)
	Update(ctx context.Context, id int64, patch domain.BookingPatch) error
}

// PaymentGateway клиент платежного провайдера
type PaymentGateway interface {
	CreateCharge(ctx context.Context, req paymentgateway.ChargeRequest, idempotencyKey uuid.UUID) (*paymentgateway.Charge, error)
	GetCharge(ctx context.Context, chargeID string) (*paymentgateway.Charge, error)
	Refund(ctx context.Context, chargeID string, amount *int64) (*paymentgateway.Refund, error)
}

// StatsCache сброс кеша статистики после изменения выручки
type StatsCache interface {
	Invalidate(ctx context.Context) error
}

// Metrics доменные метрики
type Metrics interface {
	RecordPayment(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
