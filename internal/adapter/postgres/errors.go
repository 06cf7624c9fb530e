package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

// mapError translates driver errors into domain errors. what names the row
// for not found messages.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23502":
			return fmt.Errorf("%w: required field is missing", domain.ErrValidation)
		case "23514":
			return fmt.Errorf("%w: %s", domain.ErrValidation, pqErr.Constraint)
		case "23503":
			return fmt.Errorf("%w: referenced row does not exist", domain.ErrNotFound)
		case "23505":
			return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrDependency, err)
}
