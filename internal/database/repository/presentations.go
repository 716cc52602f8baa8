package repository

import (
	"context"
	"database/sql"
	"path/filepath"

	"github.com/google/uuid"
)

// PresentationID derives a stable id from the presentation's absolute path.
func PresentationID(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String()
}

// PresentationRepo handles presentations.
type PresentationRepo struct {
	db DBTX
}

func NewPresentationRepo(db DBTX) *PresentationRepo { return &PresentationRepo{db: db} }

// Upsert records the presentation, keeping its last deck.
func (r *PresentationRepo) Upsert(ctx context.Context, p Presentation) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO presentations(id, path, title, deck_count, updated_at)
	VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 path=excluded.path, title=excluded.title, deck_count=excluded.deck_count, updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Path, p.Title, p.DeckCount)
	return err
}

func (r *PresentationRepo) Get(ctx context.Context, id string) (*Presentation, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, path, title, deck_count, last_deck, updated_at FROM presentations WHERE id = ?`, id)
	var p Presentation
	var last sql.NullString
	if err := row.Scan(&p.ID, &p.Path, &p.Title, &p.DeckCount, &last, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if last.Valid {
		p.LastDeck = &last.String
	}
	return &p, nil
}

func (r *PresentationRepo) SetLastDeck(ctx context.Context, id, deckID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE presentations SET last_deck = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, deckID, id)
	return err
}

// ClearLastDeck forgets where the presentation was left.
func (r *PresentationRepo) ClearLastDeck(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE presentations SET last_deck = NULL, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func (r *PresentationRepo) List(ctx context.Context) ([]Presentation, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, path, title, deck_count, last_deck, updated_at FROM presentations ORDER BY updated_at DESC, path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Presentation
	for rows.Next() {
		var p Presentation
		var last sql.NullString
		if err := rows.Scan(&p.ID, &p.Path, &p.Title, &p.DeckCount, &last, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if last.Valid {
			p.LastDeck = &last.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
