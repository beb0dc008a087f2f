package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/lunchly/internal/middleware"
	"github.com/iliyamo/lunchly/internal/model"
)

func newReservationHandler(pub *fakePublisher) (*ReservationHandler, *fakeReservations) {
	dinner := time.Date(2024, time.April, 5, 19, 30, 0, 0, time.UTC)
	store := &fakeReservations{byID: map[uint64]*model.Reservation{
		3: model.NewReservation(3, 7, 2, dinner, ""),
	}}
	var events EventPublisher
	if pub != nil {
		events = pub
	}
	return NewReservationHandler(newFakeCustomers(ana()), store, events), store
}

func TestReservationAdd(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		want   int
		reason string
	}{
		{"booked", "7", `{"num_guests":2,"start_at":"2024-04-05T19:30"}`, http.StatusCreated, ""},
		{"too few guests", "7", `{"num_guests":0,"start_at":"2024-04-05T19:30"}`, http.StatusUnprocessableEntity, "too_few_guests"},
		{"missing guests", "7", `{"start_at":"2024-04-05T19:30"}`, http.StatusUnprocessableEntity, "too_few_guests"},
		{"bad start", "7", `{"num_guests":2,"start_at":"tomorrow"}`, http.StatusUnprocessableEntity, "invalid_start_at"},
		{"unknown customer", "9", `{"num_guests":2,"start_at":"2024-04-05T19:30"}`, http.StatusNotFound, ""},
		{"bad body", "7", `{"num_guests":"two"}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			h, store := newReservationHandler(pub)
			c, rec := newContext(http.MethodPost, "/v1/customers/"+tt.id+"/reservations", tt.body, "id", tt.id)
			c.Set(middleware.StaffIDKey, uint64(11))

			if err := h.Add(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.reason != "" && !strings.Contains(rec.Body.String(), `"reason":"`+tt.reason+`"`) {
				t.Errorf("body = %s, want reason %s", rec.Body.String(), tt.reason)
			}
			if tt.want != http.StatusCreated {
				if len(store.saved) != 0 || len(pub.events) != 0 {
					t.Errorf("saved %d, published %d after a rejected booking", len(store.saved), len(pub.events))
				}
				return
			}
			if !strings.Contains(rec.Body.String(), `"formatted_start_at":"April 5th 2024, 7:30 pm"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
			if len(pub.events) != 1 || pub.events[0].BookedBy != 11 || pub.events[0].CustomerName != "Ana Lee" {
				t.Errorf("events = %+v", pub.events)
			}
		})
	}
}

func TestReservationAddPublishFailureStillBooks(t *testing.T) {
	h, store := newReservationHandler(&fakePublisher{err: errDB})
	c, rec := newContext(http.MethodPost, "/v1/customers/7/reservations", `{"num_guests":4,"start_at":"2024-04-05T19:30:00Z"}`, "id", "7")
	if err := h.Add(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated || len(store.saved) != 1 {
		t.Errorf("status = %d, saved = %d", rec.Code, len(store.saved))
	}

	h, _ = newReservationHandler(nil)
	c, rec = newContext(http.MethodPost, "/v1/customers/7/reservations", `{"num_guests":4,"start_at":"2024-04-05T19:30:00Z"}`, "id", "7")
	if err := h.Add(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("without publisher: status = %d", rec.Code)
	}
}

func TestReservationGet(t *testing.T) {
	h, _ := newReservationHandler(nil)
	tests := []struct {
		customer, id string
		want         int
	}{
		{"7", "3", http.StatusOK},
		{"8", "3", http.StatusNotFound},
		{"7", "x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		c, rec := newContext(http.MethodGet, "/", "", "id", tt.customer, "reservationId", tt.id)
		if err := h.Get(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != tt.want {
			t.Errorf("GET customer %s reservation %s: status = %d, want %d", tt.customer, tt.id, rec.Code, tt.want)
		}
	}
}

func TestReservationEdit(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      int
		reason    string
		wantGuest int
	}{
		{"guests", `{"num_guests":5}`, http.StatusOK, "", 5},
		{"notes only", `{"notes":"birthday"}`, http.StatusOK, "", 2},
		{"move to other customer", `{"customer_id":8}`, http.StatusUnprocessableEntity, "customer_reassigned", 2},
		{"same customer", `{"customer_id":7,"num_guests":5}`, http.StatusUnprocessableEntity, "customer_reassigned", 2},
		{"too few", `{"num_guests":0}`, http.StatusUnprocessableEntity, "too_few_guests", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newReservationHandler(nil)
			c, rec := newContext(http.MethodPut, "/", tt.body, "id", "7", "reservationId", "3")
			if err := h.Edit(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.reason != "" && !strings.Contains(rec.Body.String(), `"reason":"`+tt.reason+`"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
			if got := store.byID[3].NumGuests(); got != tt.wantGuest {
				t.Errorf("NumGuests() = %d, want %d", got, tt.wantGuest)
			}
			if saved := len(store.saved) > 0; saved != (tt.want == http.StatusOK) {
				t.Errorf("saved = %v", saved)
			}
		})
	}
}
