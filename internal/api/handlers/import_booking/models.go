package import_booking

import (
	createBookingHandler "github.com/m04kA/SMC-PickupService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-PickupService/internal/domain"
	createBooking "github.com/m04kA/SMC-PickupService/internal/usecase/create_booking"
)

// ImportBookingRequest HTTP request model: публичные поля бронирования плюс начальное состояние
type ImportBookingRequest struct {
	createBookingHandler.CreateBookingRequest

	Status         string   `json:"status"`
	DriverUserID   *int64   `json:"driverUserId,omitempty"`
	PaymentStatus  *string  `json:"paymentStatus,omitempty"`
	EstimatedPrice *float64 `json:"estimatedPrice,omitempty"`
	ActualPrice    *float64 `json:"actualPrice,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ImportBookingRequest) ToUseCaseRequest() (*createBooking.ImportRequest, error) {
	base, err := r.CreateBookingRequest.ToUseCaseRequest()
	if err != nil {
		return nil, err
	}

	req := &createBooking.ImportRequest{
		Request:        *base,
		Status:         domain.BookingStatus(r.Status),
		DriverUserID:   r.DriverUserID,
		EstimatedPrice: r.EstimatedPrice,
		ActualPrice:    r.ActualPrice,
	}
	if req.Status == "" {
		req.Status = domain.StatusPending
	}
	if r.PaymentStatus != nil {
		paymentStatus := domain.PaymentStatus(*r.PaymentStatus)
		req.PaymentStatus = &paymentStatus
	}

	return req, nil
}
