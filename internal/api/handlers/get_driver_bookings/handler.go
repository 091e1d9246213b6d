package get_driver_bookings

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
	msgInvalidDriverID = "некорректный ID водителя, ожидается D0001"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus   = "некорректный статус бронирования"
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

// Handle GET /api/v1/drivers/{driverId}/bookings?status=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["driverId"]
	if !domain.DriverCodePattern.MatchString(driverID) {
		h.logger.Warn("GET /drivers/{id}/bookings - Invalid driver ID: %q", driverID)
		handlers.RespondBadRequest(w, msgInvalidDriverID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /drivers/{id}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDriverBookings(r.Context(), &models.DriverBookingsRequest{
		DriverID: driverID,
		Status:   handlers.QueryString(r, "status"),
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, drivers.ErrDriverNotFound):
			h.logger.Warn("GET /drivers/{id}/bookings - Driver not found: driver_id=%s", driverID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drivers.ErrInvalidInput):
			h.logger.Warn("GET /drivers/{id}/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /drivers/{id}/bookings - Failed to list bookings: driver_id=%s, error=%v", driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /drivers/{id}/bookings - Bookings retrieved: driver_id=%s, count=%d", driverID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
