// Package pgerr classifies lib/pq errors.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const codeUniqueViolation = "23505"

// UniqueViolation reports whether err is a unique-constraint violation and, if so,
// the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
