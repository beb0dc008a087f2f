package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lunchly/internal/middleware"
	"github.com/iliyamo/lunchly/internal/model"
	"github.com/iliyamo/lunchly/internal/queue"
)

// ReservationStore is the part of repository.ReservationRepo the handlers use.
type ReservationStore interface {
	GetForCustomer(ctx context.Context, customerID, id uint64) (*model.Reservation, error)
	Save(ctx context.Context, r *model.Reservation) error
}

// EventPublisher announces new reservations.  A failed publish never fails
// the booking.
type EventPublisher interface {
	PublishReservationBooked(ctx context.Context, ev queue.ReservationBookedEvent) error
}

// ReservationHandler books and edits reservations of one customer.
type ReservationHandler struct {
	Customers    CustomerStore
	Reservations ReservationStore
	Events       EventPublisher // optional
}

func NewReservationHandler(customers CustomerStore, reservations ReservationStore, events EventPublisher) *ReservationHandler {
	if customers == nil || reservations == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{Customers: customers, Reservations: reservations, Events: events}
}

// reservationReq carries optional fields; on edit only the present ones
// are written.  CustomerID is accepted so that an attempt to move a
// reservation is rejected by the model instead of silently ignored.
type reservationReq struct {
	CustomerID *uint64 `json:"customer_id"`
	NumGuests  *int    `json:"num_guests"`
	StartAt    *string `json:"start_at"`
	Notes      *string `json:"notes"`
}

const publishTimeout = 3 * time.Second

// Add books a new reservation for the customer in the path.
func (h *ReservationHandler) Add(c echo.Context) error {
	customerID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	cust, err := h.Customers.Get(ctx, customerID)
	if err != nil {
		return respondError(c, err)
	}

	draft := model.ReservationDraft{Notes: req.Notes}
	if req.NumGuests != nil {
		draft.NumGuests = *req.NumGuests
	}
	var raw string
	if req.StartAt != nil {
		raw = *req.StartAt
	}
	if draft.StartAt, err = model.ParseStartAt(raw); err != nil {
		return respondError(c, err)
	}

	r, err := draft.For(cust.ID)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Reservations.Save(ctx, r); err != nil {
		return respondError(c, err)
	}

	h.announce(c, r, cust)
	return c.JSON(http.StatusCreated, r)
}

func (h *ReservationHandler) announce(c echo.Context, r *model.Reservation, cust *model.Customer) {
	if h.Events == nil {
		return
	}
	staffID, _ := middleware.StaffID(c)
	ev := queue.NewReservationBookedEvent(r, cust, staffID, time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := h.Events.PublishReservationBooked(ctx, ev); err != nil {
		c.Logger().Warnf("reservation %d booked but not announced: %v", r.ID, err)
	}
}

func (h *ReservationHandler) Get(c echo.Context) error {
	customerID, ok1 := parseID(c, "id")
	id, ok2 := parseID(c, "reservationId")
	if !ok1 || !ok2 {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	r, err := h.Reservations.GetForCustomer(ctx, customerID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Edit applies the fields present in the body.  The first rejected field
// aborts the edit and nothing is saved.
func (h *ReservationHandler) Edit(c echo.Context) error {
	customerID, ok1 := parseID(c, "id")
	id, ok2 := parseID(c, "reservationId")
	if !ok1 || !ok2 {
		return badRequest(c, "invalid id")
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	r, err := h.Reservations.GetForCustomer(ctx, customerID, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := applyEdit(r, req); err != nil {
		return respondError(c, err)
	}
	if err := h.Reservations.Save(ctx, r); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func applyEdit(r *model.Reservation, req reservationReq) error {
	if req.CustomerID != nil {
		if err := r.AssignCustomer(*req.CustomerID); err != nil {
			return err
		}
	}
	if req.NumGuests != nil {
		if err := r.SetNumGuests(*req.NumGuests); err != nil {
			return err
		}
	}
	if req.StartAt != nil {
		t, err := model.ParseStartAt(*req.StartAt)
		if err != nil {
			return err
		}
		if err := r.SetStartAt(t); err != nil {
			return err
		}
	}
	if req.Notes != nil {
		r.SetNotes(req.Notes)
	}
	return nil
}
