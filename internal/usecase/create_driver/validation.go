package create_driver

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const minPasswordLength = 6

const hoursLayout = "15:04"

var weekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

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

	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if req.WorkingHours != nil {
		start, err := time.Parse(hoursLayout, req.WorkingHours.Start)
		if err != nil {
			return fmt.Errorf("%w: invalid workingHours.start %q", ErrInvalidInput, req.WorkingHours.Start)
		}
		end, err := time.Parse(hoursLayout, req.WorkingHours.End)
		if err != nil {
			return fmt.Errorf("%w: invalid workingHours.end %q", ErrInvalidInput, req.WorkingHours.End)
		}
		if !end.After(start) {
			return fmt.Errorf("%w: workingHours.end must be after start", ErrInvalidInput)
		}
	}

	for _, day := range req.WorkingDays {
		if !weekdays[strings.ToLower(day)] {
			return fmt.Errorf("%w: unknown working day %q", ErrInvalidInput, day)
		}
	}

	if req.Vehicle != nil && req.Vehicle.Year < 0 {
		return fmt.Errorf("%w: vehicle year must not be negative", ErrInvalidInput)
	}

	return nil
}
