package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/lunchly/internal/model"
)

func bookedEvent(t *testing.T) ReservationBookedEvent {
	t.Helper()
	c := model.NewCustomer(model.CustomerFields{FirstName: "Ana", LastName: "Lee"})
	c.ID = 7
	r := model.NewReservation(3, 7, 2, time.Date(2024, time.April, 5, 19, 30, 0, 0, time.UTC), "")
	return NewReservationBookedEvent(r, c, 11, time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC))
}

func TestNewReservationBookedEvent(t *testing.T) {
	ev := bookedEvent(t)
	want := ReservationBookedEvent{
		ReservationID:    3,
		CustomerID:       7,
		CustomerName:     "Ana Lee",
		NumGuests:        2,
		StartAt:          "2024-04-05T19:30:00Z",
		FormattedStartAt: "April 5th 2024, 7:30 pm",
		BookedBy:         11,
		BookedAt:         "2024-04-01T09:00:00Z",
	}
	if ev != want {
		t.Errorf("event = %+v\nwant    %+v", ev, want)
	}
}

func TestFormatLine(t *testing.T) {
	got := formatLine(bookedEvent(t))
	want := `[2024-04-01T09:00:00Z] Reservation booked | reservation_id=3 | customer_id=7 | customer="Ana Lee" | guests=2 | start="April 5th 2024, 7:30 pm" | booked_by=11` + "\n"
	if got != want {
		t.Errorf("formatLine() =\n%s\nwant\n%s", got, want)
	}
}

func TestHandleMessageAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	body, err := json.Marshal(bookedEvent(t))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := handleMessage(dir, body); err != nil {
			t.Fatalf("handleMessage() error = %v", err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "reservations.log"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "reservation_id=3"); n != 2 {
		t.Errorf("log has %d lines for reservation 3, want 2:\n%s", n, data)
	}
}

func TestHandleMessageRejects(t *testing.T) {
	dir := t.TempDir()
	for _, body := range []string{"not json", `{"customer_id": 7}`} {
		if err := handleMessage(dir, []byte(body)); err == nil {
			t.Errorf("handleMessage(%q) = nil, want error", body)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "reservations.log")); !os.IsNotExist(err) {
		t.Errorf("log file written for rejected messages: %v", err)
	}
}
