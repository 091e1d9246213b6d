package assign_driver

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
)

type BookingService interface {
	AssignDriver(ctx context.Context, bookingID, driverUserID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
