package update_driver_location

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
)

type DriverService interface {
	UpdateLocation(ctx context.Context, driverCode string, req *models.UpdateLocationRequest) (*models.DriverResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
