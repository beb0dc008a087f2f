// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/lunchly/internal/model"
)

// ReservationBookedQueue is the durable queue reservation events go to.
const ReservationBookedQueue = "reservation.booked"

// ReservationBookedEvent is published when a new reservation is saved.  It
// carries enough for downstream consumers to log or notify without
// querying the primary database.
type ReservationBookedEvent struct {
	ReservationID    uint64 `json:"reservation_id"`
	CustomerID       uint64 `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	NumGuests        int    `json:"num_guests"`
	StartAt          string `json:"start_at"`
	FormattedStartAt string `json:"formatted_start_at"`
	BookedBy         uint64 `json:"booked_by"` // staff id
	BookedAt         string `json:"booked_at"`
}

// NewReservationBookedEvent describes r, booked for c by staff member
// bookedBy at the given time.
func NewReservationBookedEvent(r *model.Reservation, c *model.Customer, bookedBy uint64, at time.Time) ReservationBookedEvent {
	return ReservationBookedEvent{
		ReservationID:    r.ID,
		CustomerID:       r.CustomerID(),
		CustomerName:     c.FullName(),
		NumGuests:        r.NumGuests(),
		StartAt:          r.StartAt().Format(time.RFC3339),
		FormattedStartAt: r.FormattedStartAt(),
		BookedBy:         bookedBy,
		BookedAt:         at.UTC().Format(time.RFC3339),
	}
}
