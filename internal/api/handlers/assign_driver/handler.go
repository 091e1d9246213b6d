package assign_driver

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidAssignment  = "водитель не найден или пользователь не является водителем"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/assign-driver
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/assign-driver - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignDriverRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.DriverID <= 0 {
		h.logger.Warn("PATCH /bookings/{id}/assign-driver - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.AssignDriver(r.Context(), bookingID, req.DriverID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/assign-driver - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidAssignment):
			h.logger.Warn("PATCH /bookings/{id}/assign-driver - Invalid assignment: booking_id=%d, driver_id=%d",
				bookingID, req.DriverID)
			handlers.RespondBadRequest(w, msgInvalidAssignment)

		default:
			h.logger.Error("PATCH /bookings/{id}/assign-driver - Failed to assign driver: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/assign-driver - Driver assigned: booking_id=%d, driver_id=%d, status=%s",
		bookingID, req.DriverID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
