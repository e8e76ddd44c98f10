// Package server provides the HTTP REST API for wordsmithery.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/wordsmithery/internal/generation"
	"github.com/jonathan/wordsmithery/internal/tones"
	"github.com/jonathan/wordsmithery/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound indicates the session id is unknown or already discarded
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrToneNotFound indicates the tone id does not exist
type ErrToneNotFound struct {
	ID string
}

func (e *ErrToneNotFound) Error() string {
	return fmt.Sprintf("tone not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		sessionErr    *ErrSessionNotFound
		toneErr       *ErrToneNotFound
		batchErr      *generation.BatchError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &sessionErr), errors.As(err, &toneErr), errors.Is(err, tones.ErrToneNotFound):
		return http.StatusNotFound
	case errors.As(err, &batchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator and field errors into ErrValidation
func validationError(err error) *ErrValidation {
	var fieldErr *types.FieldError
	if errors.As(err, &fieldErr) {
		return &ErrValidation{Field: fieldErr.Field, Message: fieldErr.Message}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		}
	}

	return &ErrValidation{Field: "body", Message: err.Error()}
}
