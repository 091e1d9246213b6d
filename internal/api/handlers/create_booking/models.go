package create_booking

import (
	"github.com/m04kA/SMC-PickupService/internal/api/handlers"
	"github.com/m04kA/SMC-PickupService/internal/domain"
	createBooking "github.com/m04kA/SMC-PickupService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`

	ServiceType         string  `json:"serviceType"`
	BagCount            string  `json:"bagCount"`
	UrgentPickup        bool    `json:"urgentPickup"`
	PreferredDate       *string `json:"preferredDate,omitempty"` // "2025-10-15"
	PreferredTime       *string `json:"preferredTime,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Email:               r.Email,
		Phone:               r.Phone,
		Address:             r.Address,
		City:                r.City,
		ZipCode:             r.ZipCode,
		ServiceType:         domain.ServiceType(r.ServiceType),
		BagCount:            domain.BagCount(r.BagCount),
		UrgentPickup:        r.UrgentPickup,
		PreferredTime:       r.PreferredTime,
		SpecialInstructions: r.SpecialInstructions,
		Notes:               r.Notes,
	}

	if r.PreferredDate != nil && *r.PreferredDate != "" {
		date, err := handlers.ParseDate(*r.PreferredDate)
		if err != nil {
			return nil, err
		}
		req.PreferredDate = date
	}

	return req, nil
}
