package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
)

type PaymentService interface {
	ConfirmPayment(ctx context.Context, reference string) (*models.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
