package create_payment

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, bookingID int64) (*models.ChargeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
