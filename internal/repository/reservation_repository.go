package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/lunchly/internal/model"
)

// reservationRow mirrors the schema of the reservations table.  Business
// logic works with model.Reservation, whose setters validate every write.
type reservationRow struct {
	ID         uint64         `db:"id"`
	CustomerID uint64         `db:"customer_id"`
	NumGuests  int            `db:"num_guests"`
	StartAt    time.Time      `db:"start_at"`
	Notes      sql.NullString `db:"notes"`
}

func (r reservationRow) toModel() *model.Reservation {
	return model.NewReservation(r.ID, r.CustomerID, r.NumGuests, r.StartAt, model.NotesFromColumn(r.Notes))
}

const reservationColumns = "id, customer_id, num_guests, start_at, notes"

// ReservationRepo provides reads and upserts for reservations.  The
// num_guests >= 1 CHECK constraint on the table backs up the model rule.
type ReservationRepo struct {
	db sqlx.ExtContext
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db sqlx.ExtContext) *ReservationRepo { return &ReservationRepo{db: db} }

// ListForCustomer returns all reservations of a customer in database order.
func (r *ReservationRepo) ListForCustomer(ctx context.Context, customerID uint64) ([]*model.Reservation, error) {
	const q = "SELECT " + reservationColumns + " FROM reservations WHERE customer_id = ?"
	var rows []reservationRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(q), customerID); err != nil {
		return nil, err
	}
	out := make([]*model.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// GetForCustomer fetches a reservation only if it belongs to customerID.
func (r *ReservationRepo) GetForCustomer(ctx context.Context, customerID, id uint64) (*model.Reservation, error) {
	const q = "SELECT " + reservationColumns + " FROM reservations WHERE id = ? AND customer_id = ?"
	var row reservationRow
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind(q), id, customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("reservation", id)
		}
		return nil, err
	}
	return row.toModel(), nil
}

// Save validates res, then inserts it (recording the new id) or updates
// the existing row by id.
func (r *ReservationRepo) Save(ctx context.Context, res *model.Reservation) error {
	if err := res.Validate(); err != nil {
		return err
	}
	if res.ID == 0 {
		const q = "INSERT INTO reservations (customer_id, num_guests, start_at, notes) VALUES (?, ?, ?, ?)"
		id, err := insertID(ctx, r.db, q, res.CustomerID(), res.NumGuests(), res.StartAt(), res.Notes())
		if err != nil {
			return err
		}
		res.ID = id
		return nil
	}
	const q = "UPDATE reservations SET customer_id = ?, num_guests = ?, start_at = ?, notes = ? WHERE id = ?"
	matched, err := execMatched(ctx, r.db, q, res.CustomerID(), res.NumGuests(), res.StartAt(), res.Notes(), res.ID)
	if err != nil {
		return err
	}
	if !matched {
		return notFound("reservation", res.ID)
	}
	return nil
}
