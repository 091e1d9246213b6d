package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: firstName and lastName are required", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, req.Email)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.ZipCode) == "" {
		return fmt.Errorf("%w: address, city and zipCode are required", ErrInvalidInput)
	}

	if !req.ServiceType.IsValid() {
		return fmt.Errorf("%w: unknown serviceType %q", ErrInvalidInput, req.ServiceType)
	}

	if !req.BagCount.IsValid() {
		return fmt.Errorf("%w: unknown bagCount %q", ErrInvalidInput, req.BagCount)
	}

	if req.SpecialInstructions != nil && len(*req.SpecialInstructions) > domain.MaxNotesLength {
		return fmt.Errorf("%w: specialInstructions longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateImport проверяет начальное состояние импортируемого бронирования
func validateImport(req *ImportRequest) error {
	if err := validateRequest(&req.Request); err != nil {
		return err
	}

	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.Status.RequiresDriver() && req.DriverUserID == nil {
		return fmt.Errorf("%w: status %s requires a driver", ErrInvalidInput, req.Status)
	}

	if req.PaymentStatus != nil && !req.PaymentStatus.IsValid() {
		return fmt.Errorf("%w: unknown paymentStatus %q", ErrInvalidInput, *req.PaymentStatus)
	}

	if req.EstimatedPrice != nil && *req.EstimatedPrice < 0 {
		return fmt.Errorf("%w: estimatedPrice must not be negative", ErrInvalidInput)
	}

	if req.ActualPrice != nil && *req.ActualPrice < 0 {
		return fmt.Errorf("%w: actualPrice must not be negative", ErrInvalidInput)
	}

	return nil
}
