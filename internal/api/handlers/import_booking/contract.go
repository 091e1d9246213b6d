package import_booking

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-PickupService/internal/usecase/create_booking"
)

type ImportBookingUseCase interface {
	Import(ctx context.Context, req *createBooking.ImportRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
