package list_drivers

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
)

type DriverService interface {
	GetAllDrivers(ctx context.Context) (*models.DriverListResponse, error)
	GetAvailableDrivers(ctx context.Context) (*models.DriverListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
