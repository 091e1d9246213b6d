package get_driver_dashboard

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
)

type DriverService interface {
	GetDashboard(ctx context.Context, driverCode string) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
