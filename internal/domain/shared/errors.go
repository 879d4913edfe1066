// Package shared contains common domain types, errors, and events that are
// used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrNegativeValue = errors.New("value cannot be negative")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrNotEligible  = errors.New("not eligible")

	// Persistence errors
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrCorruptRecord          = errors.New("corrupt persisted record")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "roster", "voucher"
	Op      string // Operation that failed, e.g., "Issue", "Adjust"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Roster domain errors
var (
	ErrStudentNotFound = NewDomainError("roster", "Find", ErrNotFound, "student not found")
	ErrRosterEmpty     = NewDomainError("roster", "Find", ErrNotFound, "roster is empty")
)

// Voucher domain errors
var (
	ErrVoucherNotFound    = NewDomainError("voucher", "Find", ErrNotFound, "voucher not found")
	ErrStudentNotEligible = NewDomainError("voucher", "Issue", ErrNotEligible, "student has not reached the commendation threshold")
	ErrNoStudentSelected  = NewDomainError("voucher", "Issue", ErrInvalidInput, "no student selected for issuance")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotEligible checks if the error is an eligibility rejection.
func IsNotEligible(err error) bool {
	return errors.Is(err, ErrNotEligible)
}

// IsPersistence checks if the error is a storage-layer failure.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistenceUnavailable) || errors.Is(err, ErrCorruptRecord)
}
