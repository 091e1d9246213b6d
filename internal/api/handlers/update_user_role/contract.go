package update_user_role

import (
	"context"

	"github.com/m04kA/SMC-PickupService/internal/service/users/models"
)

type UserService interface {
	UpdateRole(ctx context.Context, actorID, id int64, req *models.UpdateRoleRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
