package get_driver_dashboard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/domain"
	"github.com/m04kA/SMC-PickupService/internal/service/drivers"
)

const (
	msgInvalidDriverID = "некорректный ID водителя, ожидается D0001"
	msgNotFound        = "водитель не найден"
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

// Handle GET /api/v1/drivers/{driverId}/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["driverId"]
	if !domain.DriverCodePattern.MatchString(driverID) {
		h.logger.Warn("GET /drivers/{id}/dashboard - Invalid driver ID: %q", driverID)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), driverID)
	if err != nil {
		switch {
		case errors.Is(err, drivers.ErrDriverNotFound):
			h.logger.Warn("GET /drivers/{id}/dashboard - Driver not found: driver_id=%s", driverID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /drivers/{id}/dashboard - Failed to build dashboard: driver_id=%s, error=%v", driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drivers/{id}/dashboard - Dashboard retrieved: driver_id=%s, bookings=%d",
		driverID, len(dashboard.Bookings))
	handlers.RespondJSON(w, http.StatusOK, dashboard)
}
