package create_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/service/payments"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgAlreadyPaid      = "бронирование уже оплачено"
	msgDeclined         = "платеж отклонен"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/{bookingId}/charge
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /payments/{id}/charge - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	charge, err := h.service.CreatePayment(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /payments/{id}/charge - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAlreadyPaid):
			h.logger.Warn("POST /payments/{id}/charge - Already paid: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, payments.ErrPaymentDeclined):
			h.logger.Warn("POST /payments/{id}/charge - Declined: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgDeclined)

		default:
			h.logger.Error("POST /payments/{id}/charge - Failed to charge: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/{id}/charge - Charge created: booking_id=%d, reference=%s, status=%s",
		bookingID, charge.PaymentReference, charge.Status)
	handlers.RespondJSON(w, http.StatusCreated, charge)
}
