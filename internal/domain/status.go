package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is returned when a status change is not in the transition graph
var ErrInvalidTransition = errors.New("invalid status transition")

// transitions is the legal status graph; terminal states map to nothing
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusScheduled, StatusCancelled},
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// AllowedTransitions returns the statuses reachable from current
func AllowedTransitions(current BookingStatus) []BookingStatus {
	next := transitions[current]
	out := make([]BookingStatus, len(next))
	copy(out, next)
	return out
}

// ValidateTransition fails with ErrInvalidTransition unless next is reachable from current.
// The error names both statuses and what current allows instead.
func ValidateTransition(current, next BookingStatus) error {
	allowed := AllowedTransitions(current)
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}

	if current.IsTerminal() {
		return fmt.Errorf("%w from %s to %s: %s is final", ErrInvalidTransition, current, next, current)
	}
	if len(allowed) == 0 {
		return fmt.Errorf("%w from %s to %s: unknown status %s", ErrInvalidTransition, current, next, current)
	}

	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return fmt.Errorf("%w from %s to %s: allowed %s", ErrInvalidTransition, current, next, strings.Join(names, ", "))
}

// IsTerminal reports whether no transition leaves s
func (s BookingStatus) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// RequiresDriver reports whether a booking in status s must have a driver assigned
func (s BookingStatus) RequiresDriver() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// StatusOnAssignment is the status a booking is put in when a driver is assigned.
// It is applied regardless of the current status, so assigning an in-progress
// booking moves it back to scheduled.
func StatusOnAssignment(BookingStatus) BookingStatus {
	return StatusScheduled
}
