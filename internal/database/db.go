package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoPath is returned by Open for an empty database path.
var ErrNoPath = errors.New("database: empty path")

// WAL lets `decks history` read while a presentation is open.
var dsnParams = url.Values{
	"_foreign_keys": {"on"},
	"_busy_timeout": {"5000"},
	"_journal_mode": {"WAL"},
}

// DSN builds the go-sqlite3 connection string for the file at path.
func DSN(path string) string {
	return "file:" + path + "?" + dsnParams.Encode()
}

// Open opens and pings the history database at path. The pool is capped at
// one connection so pragmas apply to every statement.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	db, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}

// WithTx runs fn in a transaction bound to ctx, rolling back when fn fails.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
