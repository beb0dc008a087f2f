package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/lunchly/internal/model"
	"github.com/iliyamo/lunchly/internal/utils"
)

type StaffRepo struct{ db sqlx.ExtContext }

func NewStaffRepo(db sqlx.ExtContext) *StaffRepo { return &StaffRepo{db: db} }

const staffColumns = "id, email, password_hash, role, is_active, created_at, updated_at"

// Create hashes the password, inserts the staff member and returns its ID.
func (r *StaffRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = normalizeEmail(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id, err := insertID(ctx, r.db,
		"INSERT INTO staff (email, password_hash, role) VALUES (?, ?, ?)",
		email, hash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return id, nil
}

// GetByEmail fetches a staff member by normalized email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (model.Staff, error) {
	return r.getOne(ctx, "SELECT "+staffColumns+" FROM staff WHERE email = ? LIMIT 1", normalizeEmail(email))
}

// GetByID fetches a staff member by id.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
	s, err := r.getOne(ctx, "SELECT "+staffColumns+" FROM staff WHERE id = ? LIMIT 1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return s, notFound("staff", id)
	}
	return s, err
}

func (r *StaffRepo) getOne(ctx context.Context, q string, arg any) (model.Staff, error) {
	var s model.Staff
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(q), arg).
		Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Role, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
