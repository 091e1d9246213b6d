package get_driver_bookings

import (
	"context"

	bookingModels "github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
)

type DriverService interface {
	GetDriverBookings(ctx context.Context, req *models.DriverBookingsRequest) (*bookingModels.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
