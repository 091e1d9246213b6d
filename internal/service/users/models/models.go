package models

import (
	"time"

	"github.com/m04kA/SMC-PickupService/internal/domain"
)

// UpdateRoleRequest смена роли пользователя
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse пользователь без хеша пароля
type UserResponse struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	DriverCode *string   `json:"driverId,omitempty"`
	Address    *string   `json:"address,omitempty"`
	City       *string   `json:"city,omitempty"`
	ZipCode    *string   `json:"zipCode,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       string(u.Role),
		DriverCode: u.DriverCode,
		Address:    u.Address,
		City:       u.City,
		ZipCode:    u.ZipCode,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
