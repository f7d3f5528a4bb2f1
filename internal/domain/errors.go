// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/CLI/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat indicates an import payload parsed but is not a quote list.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrParseFailure indicates an import payload is not valid JSON.
	ErrParseFailure = errors.New("parse failure")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ImportErrorKind distinguishes the ways an import can be rejected.
type ImportErrorKind string

const (
	// ImportInvalidFormat means the payload is JSON but not an array.
	ImportInvalidFormat ImportErrorKind = "invalid_format"

	// ImportParseFailure means the payload could not be parsed as JSON.
	ImportParseFailure ImportErrorKind = "parse_failure"
)

// ImportError reports a rejected import. No quotes are added when it is returned.
type ImportError struct {
	Kind  ImportErrorKind
	Cause error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	msg := "import rejected: " + string(e.Kind)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the sentinel matching the kind, plus the cause.
func (e *ImportError) Unwrap() []error {
	sentinel := ErrParseFailure
	if e.Kind == ImportInvalidFormat {
		sentinel = ErrInvalidFormat
	}

	if e.Cause == nil {
		return []error{sentinel}
	}

	return []error{sentinel, e.Cause}
}

// NewInvalidFormatError creates an import error for a non-array payload.
func NewInvalidFormatError(cause error) error {
	return &ImportError{Kind: ImportInvalidFormat, Cause: cause}
}

// NewParseFailureError creates an import error for unparseable bytes.
func NewParseFailureError(cause error) error {
	return &ImportError{Kind: ImportParseFailure, Cause: cause}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidFormat checks if an error is an import format error.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsParseFailure checks if an error is an import parse error.
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrParseFailure)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
