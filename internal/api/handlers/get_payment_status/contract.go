package get_payment_status

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
)

type PaymentService interface {
	GetPaymentStatus(ctx context.Context, bookingID int64) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
