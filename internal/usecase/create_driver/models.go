package create_driver

import "github.com/m04kA/SMC-PickupService/internal/domain"

// Request модель запроса на создание водителя.
// Роль пользователя всегда driver, код водителя выдается последовательностью.
type Request struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string

	Vehicle          *domain.VehicleInfo
	WorkingHours     *domain.WorkingHours
	WorkingDays      []string
	EmergencyContact *domain.EmergencyContact
}
