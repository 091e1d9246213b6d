package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// User is the identity shared by customers, drivers and admins
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	DriverCode   *string
	Address      *string
	City         *string
	ZipCode      *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

// UserSummary is the subset of user fields joined into bookings
type UserSummary struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	DriverCode *string
}

func (u *UserSummary) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
