package repository

import (
	"context"

	"github.com/google/uuid"
)

// VisitRepo handles visits.
type VisitRepo struct {
	db DBTX
}

func NewVisitRepo(db DBTX) *VisitRepo { return &VisitRepo{db: db} }

// Record inserts v, assigning an id when it has none.
func (r *VisitRepo) Record(ctx context.Context, v Visit) (Visit, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO visits(id, presentation_id, deck_id, deck_index, via, visited_at)
	VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, v.ID, v.PresentationID, v.DeckID, v.DeckIndex, v.Via)
	return v, err
}

// Recent lists the latest visits of a presentation, newest first.
func (r *VisitRepo) Recent(ctx context.Context, presentationID string, limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, presentation_id, deck_id, deck_index, via, visited_at
	FROM visits WHERE presentation_id = ?
	ORDER BY visited_at DESC, rowid DESC LIMIT ?`, presentationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.PresentationID, &v.DeckID, &v.DeckIndex, &v.Via, &v.VisitedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CountByDeck returns how often each deck of a presentation was visited.
func (r *VisitRepo) CountByDeck(ctx context.Context, presentationID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT deck_id, COUNT(*) FROM visits WHERE presentation_id = ? GROUP BY deck_id`, presentationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

// Clear deletes the visit log of a presentation.
func (r *VisitRepo) Clear(ctx context.Context, presentationID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE presentation_id = ?`, presentationID)
	return err
}
