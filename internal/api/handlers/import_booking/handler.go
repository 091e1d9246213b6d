package import_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-PickupService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат желаемой даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidDriver      = "водитель не найден или пользователь не является водителем"
	msgCodeExhausted      = "не удалось выдать номер бронирования, повторите запрос"
)

type Handler struct {
	useCase ImportBookingUseCase
	logger  Logger
}

func NewHandler(useCase ImportBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/import
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ImportBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/import - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/bookings/import - Invalid preferred date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Import(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/import - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDriver):
			h.logger.Warn("POST /admin/bookings/import - Invalid driver: driver_user_id=%v", req.DriverUserID)
			handlers.RespondBadRequest(w, msgInvalidDriver)

		case errors.Is(err, createBooking.ErrBookingCodeExhausted):
			h.logger.Error("POST /admin/bookings/import - Booking id space exhausted: service_type=%s", req.ServiceType)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCodeExhausted)

		default:
			h.logger.Error("POST /admin/bookings/import - Failed to import booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/import - Booking imported: booking_id=%s, status=%s",
		result.BookingID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
