package assign_driver

// AssignDriverRequest HTTP request model
type AssignDriverRequest struct {
	DriverID int64 `json:"driverId"` // ID пользователя-водителя
}
