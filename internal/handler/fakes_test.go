package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lunchly/internal/model"
	"github.com/iliyamo/lunchly/internal/queue"
	"github.com/iliyamo/lunchly/internal/repository"
)

// --- Fake stores ---

type fakeCustomers struct {
	byID        map[uint64]*model.Customer
	reservation map[uint64][]*model.Reservation
	searched    string
	allCalled   bool
	saved       int
	err         error
}

func newFakeCustomers(cs ...*model.Customer) *fakeCustomers {
	f := &fakeCustomers{byID: map[uint64]*model.Customer{}, reservation: map[uint64][]*model.Reservation{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCustomers) All(ctx context.Context) ([]*model.Customer, error) {
	f.allCalled = true
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Customer
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomers) Search(ctx context.Context, q string) ([]*model.Customer, error) {
	f.searched = q
	return nil, f.err
}

func (f *fakeCustomers) Get(ctx context.Context, id uint64) (*model.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, &repository.NotFoundError{Entity: "customer", ID: id}
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) TopCustomers(ctx context.Context) ([]*model.TopCustomer, error) {
	return nil, f.err
}

func (f *fakeCustomers) Reservations(ctx context.Context, c *model.Customer) ([]*model.Reservation, error) {
	return f.reservation[c.ID], f.err
}

func (f *fakeCustomers) Save(ctx context.Context, c *model.Customer) error {
	if f.err != nil {
		return f.err
	}
	f.saved++
	if c.ID == 0 {
		c.ID = uint64(100 + f.saved)
	}
	f.byID[c.ID] = c
	return nil
}

type fakeReservations struct {
	byID  map[uint64]*model.Reservation
	saved []*model.Reservation
}

func (f *fakeReservations) GetForCustomer(ctx context.Context, customerID, id uint64) (*model.Reservation, error) {
	r, ok := f.byID[id]
	if !ok || r.CustomerID() != customerID {
		return nil, &repository.NotFoundError{Entity: "reservation", ID: id}
	}
	return r, nil
}

func (f *fakeReservations) Save(ctx context.Context, r *model.Reservation) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID == 0 {
		r.ID = 3
	}
	f.saved = append(f.saved, r)
	return nil
}

type fakePublisher struct {
	events []queue.ReservationBookedEvent
	err    error
}

func (f *fakePublisher) PublishReservationBooked(ctx context.Context, ev queue.ReservationBookedEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeStaff struct {
	byEmail map[string]model.Staff
	nextID  uint64
}

func (f *fakeStaff) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	if _, ok := f.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	f.nextID++
	f.byEmail[email] = model.Staff{ID: f.nextID, Email: email, Role: role, IsActive: true}
	return f.nextID, nil
}

func (f *fakeStaff) GetByEmail(ctx context.Context, email string) (model.Staff, error) {
	s, ok := f.byEmail[email]
	if !ok {
		return model.Staff{}, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeStaff) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
	for _, s := range f.byEmail {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Staff{}, &repository.NotFoundError{Entity: "staff", ID: id}
}

type fakeTokens struct {
	active     map[string]uint64
	revokedAll []uint64
}

func (f *fakeTokens) StoreRefresh(ctx context.Context, staffID uint64, hash string, exp time.Time) error {
	f.active[hash] = staffID
	return nil
}

func (f *fakeTokens) ValidateRefresh(ctx context.Context, hash string) (uint64, error) {
	id, ok := f.active[hash]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return id, nil
}

func (f *fakeTokens) RevokeByHash(ctx context.Context, hash string) error {
	delete(f.active, hash)
	return nil
}

func (f *fakeTokens) RevokeAllForStaff(ctx context.Context, staffID uint64) error {
	f.revokedAll = append(f.revokedAll, staffID)
	return nil
}

var errDB = errors.New("connection reset")

// --- Request helpers ---

func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func ana() *model.Customer {
	c := model.NewCustomer(model.CustomerFields{FirstName: "Ana", LastName: "Lee"})
	c.ID = 7
	return c
}

