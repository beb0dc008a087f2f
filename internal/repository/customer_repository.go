package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/lunchly/internal/model"
)

// topCustomersLimit caps the top customers report.
const topCustomersLimit = 10

// customerRow mirrors the customers table.  Nullable columns are scanned
// into sql.Null* values and normalized when converted to the model.
type customerRow struct {
	ID        uint64         `db:"id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Phone     sql.NullString `db:"phone"`
	Notes     sql.NullString `db:"notes"`
}

func (r customerRow) toModel() *model.Customer {
	c := &model.Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Notes:     model.NotesFromColumn(r.Notes),
	}
	if r.Phone.Valid {
		phone := r.Phone.String
		c.Phone = &phone
	}
	return c
}

type topCustomerRow struct {
	customerRow
	TotalReservations int `db:"total_reservations"`
}

const customerColumns = "id, first_name, last_name, phone, notes"

// CustomerRepo encapsulates all queries against the customers table.
type CustomerRepo struct {
	db           sqlx.ExtContext
	reservations *ReservationRepo
}

// NewCustomerRepo binds the repository to a database handle.  The
// reservation repository answers Reservations().
func NewCustomerRepo(db sqlx.ExtContext, reservations *ReservationRepo) *CustomerRepo {
	return &CustomerRepo{db: db, reservations: reservations}
}

// All returns every customer ordered by last name, then first name.
func (r *CustomerRepo) All(ctx context.Context) ([]*model.Customer, error) {
	const q = "SELECT " + customerColumns + " FROM customers ORDER BY last_name, first_name"
	return r.list(ctx, q)
}

// Get fetches one customer by id and returns a *NotFoundError when no
// row matches.
func (r *CustomerRepo) Get(ctx context.Context, id uint64) (*model.Customer, error) {
	const q = "SELECT " + customerColumns + " FROM customers WHERE id = ?"
	var row customerRow
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("customer", id)
		}
		return nil, err
	}
	return row.toModel(), nil
}

// Search returns customers whose first or last name contains query,
// ignoring case, in the same order as All.  Callers route an empty
// query to All.
func (r *CustomerRepo) Search(ctx context.Context, query string) ([]*model.Customer, error) {
	const q = "SELECT " + customerColumns + ` FROM customers
		WHERE LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?
		ORDER BY last_name, first_name`
	pattern := containsPattern(query)
	return r.list(ctx, q, pattern, pattern)
}

// TopCustomers ranks customers by their number of reservations.  Only
// customers with at least one reservation appear.
func (r *CustomerRepo) TopCustomers(ctx context.Context) ([]*model.TopCustomer, error) {
	const q = `SELECT c.id, c.first_name, c.last_name, c.phone, c.notes,
			COUNT(r.id) AS total_reservations
		FROM customers c
		JOIN reservations r ON r.customer_id = c.id
		GROUP BY c.id, c.first_name, c.last_name, c.phone, c.notes
		ORDER BY total_reservations DESC, c.id
		LIMIT ?`
	var rows []topCustomerRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(q), topCustomersLimit); err != nil {
		return nil, err
	}
	out := make([]*model.TopCustomer, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.TopCustomer{
			Customer:          *row.toModel(),
			TotalReservations: row.TotalReservations,
		})
	}
	return out, nil
}

// Reservations returns every reservation booked for c.
func (r *CustomerRepo) Reservations(ctx context.Context, c *model.Customer) ([]*model.Reservation, error) {
	return r.reservations.ListForCustomer(ctx, c.ID)
}

// Save inserts c when it has no id yet and stores the generated id on
// it; otherwise it updates every mutable column of the existing row.
func (r *CustomerRepo) Save(ctx context.Context, c *model.Customer) error {
	if c.ID == 0 {
		const q = "INSERT INTO customers (first_name, last_name, phone, notes) VALUES (?, ?, ?, ?)"
		id, err := insertID(ctx, r.db, q, c.FirstName, c.LastName, c.Phone, c.Notes)
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	}
	const q = "UPDATE customers SET first_name = ?, last_name = ?, phone = ?, notes = ? WHERE id = ?"
	matched, err := execMatched(ctx, r.db, q, c.FirstName, c.LastName, c.Phone, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if !matched {
		return notFound("customer", c.ID)
	}
	return nil
}

func (r *CustomerRepo) list(ctx context.Context, q string, args ...any) ([]*model.Customer, error) {
	var rows []customerRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	out := make([]*model.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}
