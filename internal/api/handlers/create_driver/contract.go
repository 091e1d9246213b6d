package create_driver

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
	createDriver "github.com/m04kA/SMC-PickupService/internal/usecase/create_driver"
)

type CreateDriverUseCase interface {
	Execute(ctx context.Context, req *createDriver.Request) (*models.DriverResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
