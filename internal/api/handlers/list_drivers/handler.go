package list_drivers

import (
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
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

// HandleAll GET /api/v1/drivers
func (h *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAllDrivers(r.Context())
	if err != nil {
		h.logger.Error("GET /drivers - Failed to list drivers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /drivers - Drivers retrieved: count=%d", len(result.Drivers))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleAvailable GET /api/v1/drivers/available
func (h *Handler) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAvailableDrivers(r.Context())
	if err != nil {
		h.logger.Error("GET /drivers/available - Failed to list available drivers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /drivers/available - Drivers retrieved: count=%d", len(result.Drivers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
