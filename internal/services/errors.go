package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type ServiceError struct {
	Status  int
	Message string
	cause   error
}

func (e ServiceError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e ServiceError) Unwrap() error {
	return e.cause
}

func ErrValidation(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Status: http.StatusConflict, Message: msg}
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: http.StatusNotFound, Message: msg}
}

// ErrStore marks a transaction, connectivity, or filesystem failure. The
// step text goes to the logs through the cause chain; the user only ever
// sees the generic message.
func ErrStore(err error, step string) error {
	if err == nil {
		return nil
	}
	return ServiceError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		cause:   fmt.Errorf("%s: %w", step, err),
	}
}

func IsValidation(err error) bool { return hasStatus(err, http.StatusBadRequest) }
func IsConflict(err error) bool   { return hasStatus(err, http.StatusConflict) }
func IsNotFound(err error) bool   { return hasStatus(err, http.StatusNotFound) }
func IsStore(err error) bool      { return hasStatus(err, http.StatusInternalServerError) }

func hasStatus(err error, status int) bool {
	var serviceErr ServiceError
	return errors.As(err, &serviceErr) && serviceErr.Status == status
}

// mapConstraintError translates engine-specific constraint violations into
// the shared taxonomy so both backends surface the same errors. Unmatched
// errors become store failures.
func mapConstraintError(err error, uniqueMsg, foreignKeyMsg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrConflict(uniqueMsg)
		case "23503":
			return ErrNotFound(foreignKeyMsg)
		}
		return ErrStore(err, "constraint")
	}
	text := err.Error()
	if strings.Contains(text, "UNIQUE constraint") {
		return ErrConflict(uniqueMsg)
	}
	if strings.Contains(text, "FOREIGN KEY constraint") {
		return ErrNotFound(foreignKeyMsg)
	}
	return ErrStore(err, "constraint")
}
