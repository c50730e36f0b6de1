// Package services defines the business logic for credentials, surveys,
// respondents, questions, their associations and responses.
// This file centralizes the service-level error values so that they can be
// consistently returned by service methods and checked by callers with
// errors.Is / errors.As.
//
// Translation into HTTP status codes is performed at the handler layer.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// Error classes. Every error returned by this package wraps exactly one.
var (
	// ErrValidation: a required field is empty or malformed. Nothing was written.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: a credential already exists for the email.
	ErrConflict = errors.New("conflict")

	// ErrNotFound: a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredential: the password does not match the stored hash.
	ErrInvalidCredential = errors.New("invalid credentials")

	// ErrStorage: the database failed; the operation was rolled back.
	ErrStorage = errors.New("storage failure")
)

// ErrEmailTaken is returned by Register for an existing credential.
var ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrConflict)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap ties ValidationError to ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError names the missing record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Unwrap ties NotFoundError to ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(kind domain.EntityKind, id int64) error {
	return &NotFoundError{Kind: string(kind), ID: fmt.Sprint(id)}
}

// storageErr wraps a driver error into ErrStorage, keeping both in the chain.
// Errors that already carry a service class pass through unchanged.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	for _, class := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrInvalidCredential, ErrStorage} {
		if errors.Is(err, class) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
