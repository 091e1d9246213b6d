package update_driver_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/domain"
	"github.com/m04kA/SMC-PickupService/internal/service/drivers"
	"github.com/m04kA/SMC-PickupService/internal/service/drivers/models"
)

const (
	msgInvalidDriverID    = "некорректный ID водителя, ожидается D0001"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус водителя, ожидается available, busy или offline"
	msgNotFound           = "водитель не найден"
)

type Handler struct {
	service DriverService
	logger  Logger
}

func NewHandler(service DriverService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/drivers/{driverId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["driverId"]
	if !domain.DriverCodePattern.MatchString(driverID) {
		h.logger.Warn("PATCH /drivers/{id}/status - Invalid driver ID: %q", driverID)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /drivers/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	driver, err := h.service.UpdateStatus(r.Context(), driverID, &req)
	if err != nil {
		switch {
		case errors.Is(err, drivers.ErrInvalidInput):
			h.logger.Warn("PATCH /drivers/{id}/status - Invalid status: driver_id=%s, status=%s", driverID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, drivers.ErrDriverNotFound):
			h.logger.Warn("PATCH /drivers/{id}/status - Driver not found: driver_id=%s", driverID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /drivers/{id}/status - Failed to update status: driver_id=%s, error=%v", driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /drivers/{id}/status - Status updated: driver_id=%s, status=%s", driverID, driver.Status)
	handlers.RespondJSON(w, http.StatusOK, driver)
}
