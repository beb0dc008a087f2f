// Package repository defines error types that are reused across multiple
// repositories.  Handlers use them to pick a response without knowing
// which driver produced the failure.  Any other error coming out of a
// repository is a data access error passed through unchanged.
package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a staff account already uses the email.
var ErrEmailExists = errors.New("email already exists")

// NotFoundError is returned when a lookup by primary key matches no row.
type NotFoundError struct {
	Entity string // "customer", "reservation", ...
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No such %s: %d", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Status is the HTTP status a handler should answer with.
func (e *NotFoundError) Status() int { return http.StatusNotFound }

func notFound(entity string, id uint64) error {
	return &NotFoundError{Entity: entity, ID: id}
}
