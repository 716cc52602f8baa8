package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx, so repos can join a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Presentation represents a presentations row.
type Presentation struct {
	ID        string
	Path      string
	Title     string
	DeckCount int
	LastDeck  *string
	UpdatedAt time.Time
}

// Visit represents a visits row: one arrival at a deck.
type Visit struct {
	ID             string
	PresentationID string
	DeckID         string
	DeckIndex      int
	Via            string
	VisitedAt      time.Time
}
