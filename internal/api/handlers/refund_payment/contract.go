package refund_payment

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
)

type PaymentService interface {
	RefundPayment(ctx context.Context, bookingID int64, req *models.RefundRequest) (*models.RefundResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
