package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

// Postgres error codes this package reacts to.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally matching a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// wrapTransient tags serialization and deadlock failures with
// domain.ErrTransientStorage so callers can retry the whole transaction.
func wrapTransient(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%w: %v", domain.ErrTransientStorage, err)
		}
	}
	return err
}
