package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lunchly/internal/model"
)

// CustomerStore is the part of repository.CustomerRepo the handlers use.
type CustomerStore interface {
	All(ctx context.Context) ([]*model.Customer, error)
	Search(ctx context.Context, query string) ([]*model.Customer, error)
	Get(ctx context.Context, id uint64) (*model.Customer, error)
	TopCustomers(ctx context.Context) ([]*model.TopCustomer, error)
	Reservations(ctx context.Context, c *model.Customer) ([]*model.Reservation, error)
	Save(ctx context.Context, c *model.Customer) error
}

// CustomerHandler serves the customer directory and the top customers
// report.
type CustomerHandler struct {
	Customers CustomerStore
}

func NewCustomerHandler(customers CustomerStore) *CustomerHandler {
	if customers == nil {
		panic("nil store passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: customers}
}

type customerReq struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
}

func (r customerReq) fields() (model.CustomerFields, bool) {
	f := model.CustomerFields{FirstName: r.FirstName, LastName: r.LastName, Phone: r.Phone, Notes: r.Notes}
	ok := strings.TrimSpace(f.FirstName) != "" && strings.TrimSpace(f.LastName) != ""
	return f, ok
}

type customerDetail struct {
	model.CustomerView
	Reservations []*model.Reservation `json:"reservations"`
}

// List returns every customer, or those whose first or last name contains
// ?search= when it is not blank.
func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	var (
		list []*model.Customer
		err  error
	)
	if q := strings.TrimSpace(c.QueryParam("search")); q != "" {
		list, err = h.Customers.Search(ctx, q)
	} else {
		list, err = h.Customers.All(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	if list == nil {
		list = []*model.Customer{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// Top returns the ten customers with the most reservations.
func (h *CustomerHandler) Top(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	top, err := h.Customers.TopCustomers(ctx)
	if err != nil {
		return respondError(c, err)
	}
	if top == nil {
		top = []*model.TopCustomer{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": top})
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	f, ok := req.fields()
	if !ok {
		return badRequest(c, "first_name and last_name required")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	cust := model.NewCustomer(f)
	if err := h.Customers.Save(ctx, cust); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, cust)
}

// Detail returns a customer together with their reservations.
func (h *CustomerHandler) Detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	cust, err := h.Customers.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Customers.Reservations(ctx, cust)
	if err != nil {
		return respondError(c, err)
	}
	if res == nil {
		res = []*model.Reservation{}
	}
	return c.JSON(http.StatusOK, customerDetail{CustomerView: cust.View(), Reservations: res})
}

// Update replaces every editable field of an existing customer.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	f, ok := req.fields()
	if !ok {
		return badRequest(c, "first_name and last_name required")
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	cust, err := h.Customers.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	cust.Apply(f)
	if err := h.Customers.Save(ctx, cust); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cust)
}
