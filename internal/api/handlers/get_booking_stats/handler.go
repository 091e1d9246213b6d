package get_booking_stats

import (
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/service/bookings/models"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "начальная дата позже конечной"
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

// Handle GET /api/v1/bookings/stats?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /bookings/stats - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /bookings/stats - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		h.logger.Warn("GET /bookings/stats - Start date after end date")
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	stats, err := h.service.GetStats(r.Context(), &models.StatsRequest{StartDate: startDate, EndDate: endDate})
	if err != nil {
		h.logger.Error("GET /bookings/stats - Failed to get stats: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/stats - Stats retrieved: total=%d", stats.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
