package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/iliyamo/lunchly/internal/config"
)

// DSN builds the connection string for the configured driver.
func DSN(cfg config.Config) string {
	if cfg.DBDriver == config.DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			pgQuote(cfg.DBHost), pgQuote(cfg.DBPort), pgQuote(cfg.DBUser),
			pgQuote(cfg.DBPass), pgQuote(cfg.DBName), pgQuote(cfg.DBSSLMode))
	}
	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPass
	mc.Net = "tcp"
	mc.Addr = cfg.DBHost + ":" + cfg.DBPort
	mc.DBName = cfg.DBName
	// DATETIME -> time.Time in UTC; matched rather than changed rows, so
	// saving an unchanged record is not mistaken for a missing one.
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

var pgEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// pgQuote single-quotes a keyword/value connection parameter so empty
// values and values with spaces or quotes parse as one value.
func pgQuote(v string) string {
	return "'" + pgEscaper.Replace(v) + "'"
}

// Open connects to the configured database and verifies the connection.
// With tracing enabled every statement is recorded as an X-Ray subsegment.
func Open(cfg config.Config) (*sqlx.DB, error) {
	dsn := DSN(cfg)

	var (
		db  *sql.DB
		err error
	)
	if cfg.Tracing {
		db, err = xray.SQLContext(cfg.DBDriver, dsn)
	} else {
		db, err = sql.Open(cfg.DBDriver, dsn)
	}
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return sqlx.NewDb(db, cfg.DBDriver), nil
}
