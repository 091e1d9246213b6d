package update_user_role

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/api/middleware"
	"github.com/m04kA/SMC-PickupService/internal/service/users"
	"github.com/m04kA/SMC-PickupService/internal/service/users/models"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRole        = "некорректная роль, ожидается customer, driver или admin"
	msgUnauthorized       = "не удалось определить пользователя"
	msgSelfRoleChange     = "нельзя изменить собственную роль"
	msgNotFound           = "пользователь не найден"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/users/{userId}/role
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /users/{id}/role - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("PATCH /users/{id}/role - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.UpdateRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id}/role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateRole(r.Context(), actorID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidRole):
			h.logger.Warn("PATCH /users/{id}/role - Invalid role: user_id=%d, role=%s", userID, req.Role)
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, users.ErrSelfRoleChange):
			h.logger.Warn("PATCH /users/{id}/role - Self role change: user_id=%d", userID)
			handlers.RespondForbidden(w, msgSelfRoleChange)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /users/{id}/role - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /users/{id}/role - Failed to update role: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /users/{id}/role - Role updated: user_id=%d, role=%s, by=%d", userID, user.Role, actorID)
	handlers.RespondJSON(w, http.StatusOK, user)
}
