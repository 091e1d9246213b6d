package refund_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/service/payments"
	"github.com/m04kA/SMC-PickupService/internal/service/payments/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "сумма возврата должна быть положительной"
	msgBookingNotFound    = "бронирование не найдено"
	msgPaymentNotFound    = "у бронирования нет платежа"
	msgDeclined           = "возврат отклонен"
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

// Handle POST /api/v1/payments/{bookingId}/refund
// Тело запроса необязательно: без суммы возвращается весь платеж.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /payments/{id}/refund - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.RefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /payments/{id}/refund - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RefundPayment(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments/{id}/refund - Invalid amount: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /payments/{id}/refund - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/{id}/refund - No payment: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrPaymentDeclined):
			h.logger.Warn("POST /payments/{id}/refund - Refund declined: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgDeclined)

		default:
			h.logger.Error("POST /payments/{id}/refund - Failed to refund: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/{id}/refund - Refund created: booking_id=%d, refund_id=%s", bookingID, result.RefundID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
