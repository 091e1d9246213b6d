package update_driver_status

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
)

type DriverService interface {
	UpdateStatus(ctx context.Context, driverCode string, req *models.UpdateStatusRequest) (*models.DriverResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
