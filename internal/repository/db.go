package repository

import (
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// NewDB creates a MySQL connection pool for the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed, continuing without DB", "error", err)
	}

	return db, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
