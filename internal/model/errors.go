package model

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// Reason is a machine readable code describing why a field was rejected.
type Reason string

const (
	ReasonTooFewGuests       Reason = "too_few_guests"
	ReasonInvalidStartAt     Reason = "invalid_start_at"
	ReasonCustomerReassigned Reason = "customer_reassigned"
	ReasonCustomerRequired   Reason = "customer_required"
)

// ValidationError reports a rejected field write.  The record keeps the
// value it had before the write.
type ValidationError struct {
	Field   string
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field string, reason Reason, msg string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Message: msg}
}
