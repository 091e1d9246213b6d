package create_driver

import (
	"github.com/m04kA/SMC-PickupService/internal/domain"
	createDriver "github.com/m04kA/SMC-PickupService/internal/usecase/create_driver"
)

type VehicleRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
	Capacity     string `json:"capacity"`
}

type WorkingHoursRequest struct {
	Start string `json:"start"` // "08:00"
	End   string `json:"end"`   // "17:00"
}

type EmergencyContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// CreateDriverRequest HTTP request model
type CreateDriverRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`

	Vehicle          *VehicleRequest          `json:"vehicle,omitempty"`
	WorkingHours     *WorkingHoursRequest     `json:"workingHours,omitempty"`
	WorkingDays      []string                 `json:"workingDays,omitempty"`
	EmergencyContact *EmergencyContactRequest `json:"emergencyContact,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateDriverRequest) ToUseCaseRequest() *createDriver.Request {
	req := &createDriver.Request{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Password:    r.Password,
		WorkingDays: r.WorkingDays,
	}

	if r.Vehicle != nil {
		req.Vehicle = &domain.VehicleInfo{
			Make:         r.Vehicle.Make,
			Model:        r.Vehicle.Model,
			Year:         r.Vehicle.Year,
			LicensePlate: r.Vehicle.LicensePlate,
			Capacity:     r.Vehicle.Capacity,
		}
	}
	if r.WorkingHours != nil {
		req.WorkingHours = &domain.WorkingHours{Start: r.WorkingHours.Start, End: r.WorkingHours.End}
	}
	if r.EmergencyContact != nil {
		req.EmergencyContact = &domain.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Phone:        r.EmergencyContact.Phone,
			Relationship: r.EmergencyContact.Relationship,
		}
	}

	return req
}
