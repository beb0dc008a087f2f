package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Queries are written with ? placeholders and rebound for the driver in
// use, so the same text runs on MySQL and PostgreSQL.

// insertID runs an INSERT and returns the generated id.  PostgreSQL has
// no LastInsertId, so the statement gets a RETURNING clause there.
func insertID(ctx context.Context, db sqlx.ExtContext, query string, args ...any) (uint64, error) {
	if db.DriverName() == "postgres" {
		var id uint64
		err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// execMatched runs an UPDATE and reports whether any row matched.
func execMatched(ctx context.Context, db sqlx.ExtContext, query string, args ...any) (bool, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching q as a
// literal substring.  Backslash is the default LIKE escape on both drivers.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// isDuplicateKey recognizes unique violations from either driver.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	return false
}
