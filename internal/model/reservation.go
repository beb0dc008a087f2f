package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// MinGuests is the smallest party size accepted.  The reservations table
// carries the same rule as a CHECK constraint.
const MinGuests = 1

// Reservation records a booking for a party tied to one customer.  Its
// fields are unexported so that every write goes through a validating
// setter; a rejected write leaves the previous value in place.
//
// The customer reference has two states.  A zero Reservation is
// unassigned; NewReservation, ReservationDraft.For and a successful
// AssignCustomer move it to assigned, and nothing moves it back.
type Reservation struct {
	ID         uint64
	customerID uint64
	numGuests  int
	startAt    time.Time
	notes      string
}

// ReservationDraft holds the booking details collected before the
// reservation is attached to a customer.
type ReservationDraft struct {
	NumGuests int
	StartAt   time.Time
	Notes     *string
}

// For validates the draft and returns an unsaved reservation owned by
// customerID.
func (d ReservationDraft) For(customerID uint64) (*Reservation, error) {
	r := &Reservation{}
	if err := r.AssignCustomer(customerID); err != nil {
		return nil, err
	}
	if err := r.SetNumGuests(d.NumGuests); err != nil {
		return nil, err
	}
	if err := r.SetStartAt(d.StartAt); err != nil {
		return nil, err
	}
	r.SetNotes(d.Notes)
	return r, nil
}

// NewReservation rebuilds a reservation from a stored row.  Values are
// taken as they are; the database already enforced them.
func NewReservation(id, customerID uint64, numGuests int, startAt time.Time, notes string) *Reservation {
	return &Reservation{
		ID:         id,
		customerID: customerID,
		numGuests:  numGuests,
		startAt:    startAt,
		notes:      notes,
	}
}

// CustomerID returns the owning customer, zero while unassigned.
func (r *Reservation) CustomerID() uint64 { return r.customerID }

// NumGuests returns the party size.
func (r *Reservation) NumGuests() int { return r.numGuests }

// StartAt returns when the reservation begins.
func (r *Reservation) StartAt() time.Time { return r.startAt }

// Notes returns the staff notes, empty when none were given.
func (r *Reservation) Notes() string { return r.notes }

// CustomerAssigned reports whether the reservation already belongs to a customer.
func (r *Reservation) CustomerAssigned() bool { return r.customerID != 0 }

// AssignCustomer ties the reservation to a customer.  It succeeds only
// once; any later call fails, even with the same id.
func (r *Reservation) AssignCustomer(id uint64) error {
	if r.CustomerAssigned() {
		return invalid("customer_id", ReasonCustomerReassigned, "cannot change customer_id once it is assigned")
	}
	if id == 0 {
		return invalid("customer_id", ReasonCustomerRequired, "customer_id is required")
	}
	r.customerID = id
	return nil
}

// SetNumGuests rejects parties smaller than MinGuests.
func (r *Reservation) SetNumGuests(n int) error {
	if n < MinGuests {
		return invalid("num_guests", ReasonTooFewGuests, "there must be at least 1 guest")
	}
	r.numGuests = n
	return nil
}

// SetStartAt requires an actual point in time; the zero time is refused.
func (r *Reservation) SetStartAt(t time.Time) error {
	if t.IsZero() {
		return invalid("start_at", ReasonInvalidStartAt, "start_at must be a valid date and time")
	}
	r.startAt = t
	return nil
}

// SetNotes stores v, normalizing a missing value to the empty string.
func (r *Reservation) SetNotes(v *string) { r.notes = Notes(v) }

// Validate checks the invariants a reservation must hold before it is saved.
func (r *Reservation) Validate() error {
	if !r.CustomerAssigned() {
		return invalid("customer_id", ReasonCustomerRequired, "customer_id is required")
	}
	if r.numGuests < MinGuests {
		return invalid("num_guests", ReasonTooFewGuests, "there must be at least 1 guest")
	}
	if r.startAt.IsZero() {
		return invalid("start_at", ReasonInvalidStartAt, "start_at must be a valid date and time")
	}
	return nil
}

// FormattedStartAt renders the start time like "April 5th 2024, 7:30 pm".
func (r *Reservation) FormattedStartAt() string {
	t := r.startAt
	return fmt.Sprintf("%s %s %d, %s", t.Format("January"), humanize.Ordinal(t.Day()), t.Year(), t.Format("3:04 pm"))
}

// startAtLayouts are the input formats accepted from clients, most precise first.
var startAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseStartAt converts client input into a start time.  Anything that
// does not parse fails the same way SetStartAt does.
func ParseStartAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid("start_at", ReasonInvalidStartAt, "start_at must be a valid date and time")
}

type reservationJSON struct {
	ID               uint64    `json:"id"`
	CustomerID       uint64    `json:"customer_id"`
	NumGuests        int       `json:"num_guests"`
	StartAt          time.Time `json:"start_at"`
	FormattedStartAt string    `json:"formatted_start_at"`
	Notes            string    `json:"notes"`
}

func (r *Reservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(reservationJSON{
		ID:               r.ID,
		CustomerID:       r.customerID,
		NumGuests:        r.numGuests,
		StartAt:          r.startAt,
		FormattedStartAt: r.FormattedStartAt(),
		Notes:            r.notes,
	})
}
