package create_driver

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	createDriver "github.com/m04kA/SMC-PickupService/internal/usecase/create_driver"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные водителя"
	msgDuplicateIdentity  = "пользователь с таким email уже существует"
)

type Handler struct {
	useCase CreateDriverUseCase
	logger  Logger
}

func NewHandler(useCase CreateDriverUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drivers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateDriverRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drivers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	driver, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createDriver.ErrInvalidInput):
			h.logger.Warn("POST /drivers - Invalid input: email=%s, error=%v", req.Email, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createDriver.ErrDuplicateIdentity):
			h.logger.Warn("POST /drivers - Duplicate email: email=%s", req.Email)
			handlers.RespondConflict(w, msgDuplicateIdentity)

		default:
			h.logger.Error("POST /drivers - Failed to create driver: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drivers - Driver created successfully: driver_id=%s, user_id=%d", driver.DriverID, driver.UserID)
	handlers.RespondJSON(w, http.StatusCreated, driver)
}
