package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var customerCols = []string{"id", "first_name", "last_name", "phone", "notes"}

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return sqlx.NewDb(db, driver), mock
}

func newCustomerRepo(t *testing.T, driver string) (*CustomerRepo, sqlmock.Sqlmock) {
	db, mock := newMock(t, driver)
	return NewCustomerRepo(db, NewReservationRepo(db)), mock
}

func TestCustomerRepoAll(t *testing.T) {
	repo, mock := newCustomerRepo(t, "mysql")
	mock.ExpectQuery(regexp.QuoteMeta("FROM customers ORDER BY last_name, first_name")).
		WillReturnRows(sqlmock.NewRows(customerCols).
			AddRow(2, "Ana", "Lee", "555-1111", "regular").
			AddRow(1, "Bo", "Smith", nil, nil))

	got, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("All() returned %d customers, want 2", len(got))
	}
	if got[0].FullName() != "Ana Lee" || got[0].Phone == nil || *got[0].Phone != "555-1111" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Phone != nil || got[1].Notes != "" {
		t.Errorf("NULL columns not normalized: %+v", got[1])
	}
}

func TestCustomerRepoGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newCustomerRepo(t, "mysql")
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = ?")).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows(customerCols).AddRow(7, "Ana", "Lee", "555-1111", ""))

		c, err := repo.Get(context.Background(), 7)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if c.ID != 7 || c.FullName() != "Ana Lee" || c.Notes != "" {
			t.Errorf("Get() = %+v", c)
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newCustomerRepo(t, "postgres")
		mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE id = $1")).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(customerCols))

		_, err := repo.Get(context.Background(), 99)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Status() != 404 || nf.Error() != "No such customer: 99" {
			t.Errorf("Get() error = %#v", err)
		}
	})

	t.Run("data access error", func(t *testing.T) {
		repo, mock := newCustomerRepo(t, "mysql")
		boom := errors.New("connection refused")
		mock.ExpectQuery("FROM customers").WillReturnError(boom)

		if _, err := repo.Get(context.Background(), 1); !errors.Is(err, boom) {
			t.Errorf("Get() error = %v, want %v", err, boom)
		}
	})
}

func TestCustomerRepoSearch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		pattern string
	}{
		{"plain", "Smith", "%smith%"},
		{"metacharacters", `50%_off\`, `%50\%\_off\\%`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newCustomerRepo(t, "postgres")
			mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(first_name) LIKE $1 OR LOWER(last_name) LIKE $2")).
				WithArgs(tt.pattern, tt.pattern).
				WillReturnRows(sqlmock.NewRows(customerCols).AddRow(3, "Jo", "Smithers", nil, "note"))

			got, err := repo.Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != 1 || got[0].LastName != "Smithers" {
				t.Errorf("Search() = %+v", got)
			}
		})
	}
}

func TestCustomerRepoTopCustomers(t *testing.T) {
	repo, mock := newCustomerRepo(t, "mysql")
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total_reservations DESC, c.id")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(append(customerCols, "total_reservations")).
			AddRow(4, "Ana", "Lee", nil, nil, 5).
			AddRow(2, "Bo", "Smith", nil, "vip", 2))

	got, err := repo.TopCustomers(context.Background())
	if err != nil {
		t.Fatalf("TopCustomers() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("TopCustomers() returned %d rows", len(got))
	}
	if got[0].ID != 4 || got[0].TotalReservations != 5 || got[1].TotalReservations != 2 || got[1].Notes != "vip" {
		t.Errorf("TopCustomers() = %+v, %+v", got[0], got[1])
	}
}

func TestCustomerRepoSaveInsertsThenUpdates(t *testing.T) {
	repo, mock := newCustomerRepo(t, "mysql")
	phone := "555-1111"
	c := newAna(&phone)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers (first_name, last_name, phone, notes) VALUES (?, ?, ?, ?)")).
		WithArgs("Ana", "Lee", "555-1111", "").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE customers SET first_name = ?, last_name = ?, phone = ?, notes = ? WHERE id = ?")).
		WithArgs("Ana", "Lee", "555-1111", "window", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), c); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if c.ID != 7 {
		t.Fatalf("ID = %d after insert, want 7", c.ID)
	}
	c.Notes = "window"
	if err := repo.Save(context.Background(), c); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if c.ID != 7 {
		t.Errorf("ID = %d after update, want 7", c.ID)
	}
}

func TestCustomerRepoSavePostgresReturning(t *testing.T) {
	repo, mock := newCustomerRepo(t, "postgres")
	c := newAna(nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers (first_name, last_name, phone, notes) VALUES ($1, $2, $3, $4) RETURNING id")).
		WithArgs("Ana", "Lee", nil, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	if err := repo.Save(context.Background(), c); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if c.ID != 12 {
		t.Errorf("ID = %d, want 12", c.ID)
	}
}

func TestCustomerRepoSaveUpdateMissing(t *testing.T) {
	repo, mock := newCustomerRepo(t, "mysql")
	c := newAna(nil)
	c.ID = 40

	mock.ExpectExec("UPDATE customers").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Save(context.Background(), c); !errors.Is(err, ErrNotFound) {
		t.Errorf("Save() error = %v, want ErrNotFound", err)
	}
}

func TestCustomerRepoReservations(t *testing.T) {
	repo, mock := newCustomerRepo(t, "mysql")
	c := newAna(nil)
	c.ID = 7

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE customer_id = ?")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(reservationCols))

	got, err := repo.Reservations(context.Background(), c)
	if err != nil {
		t.Fatalf("Reservations() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Reservations() = %v, want empty", got)
	}
}
