package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jask/decks/internal/database"
	"github.com/jask/decks/internal/database/repository"
)

// HistoryService remembers where each presentation was left and which decks
// were visited.
type HistoryService struct {
	DB            *sql.DB
	Presentations *repository.PresentationRepo
	Visits        *repository.VisitRepo

	mu       sync.Mutex
	lastDeck map[string]string // presentation id -> deck id
}

// Register records a presentation being opened and returns its id together
// with the deck it was last left on ("" when unknown).
func (s *HistoryService) Register(ctx context.Context, path, title string, deckCount int) (string, string, error) {
	if s.Presentations == nil {
		return "", "", fmt.Errorf("history: presentations repo not configured")
	}
	id := repository.PresentationID(path)
	if err := s.Presentations.Upsert(ctx, repository.Presentation{ID: id, Path: path, Title: title, DeckCount: deckCount}); err != nil {
		return "", "", fmt.Errorf("register presentation: %w", err)
	}
	p, err := s.Presentations.Get(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("load presentation: %w", err)
	}
	last := ""
	if p != nil && p.LastDeck != nil {
		last = *p.LastDeck
	}
	s.mu.Lock()
	s.remember(id, last)
	s.mu.Unlock()
	return id, last, nil
}

// Visit records an arrival at a deck. Repeated reports for the deck that is
// already current are ignored; it reports whether a row was written.
func (s *HistoryService) Visit(ctx context.Context, presentationID, deckID string, deckIndex int, via string) (bool, error) {
	if s.Visits == nil || s.Presentations == nil {
		return false, fmt.Errorf("history: repos not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastDeck[presentationID] == deckID {
		return false, nil
	}
	if _, err := s.Visits.Record(ctx, repository.Visit{
		PresentationID: presentationID,
		DeckID:         deckID,
		DeckIndex:      deckIndex,
		Via:            via,
	}); err != nil {
		return false, fmt.Errorf("record visit: %w", err)
	}
	if err := s.Presentations.SetLastDeck(ctx, presentationID, deckID); err != nil {
		return false, fmt.Errorf("set last deck: %w", err)
	}
	s.remember(presentationID, deckID)
	return true, nil
}

// Reset wipes the visit log and resume position of one presentation.
func (s *HistoryService) Reset(ctx context.Context, presentationID string) error {
	if s.DB == nil {
		return fmt.Errorf("history: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := repository.NewVisitRepo(tx).Clear(ctx, presentationID); err != nil {
			return fmt.Errorf("reset visits: %w", err)
		}
		if err := repository.NewPresentationRepo(tx).ClearLastDeck(ctx, presentationID); err != nil {
			return fmt.Errorf("reset last deck: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	s.mu.Lock()
	s.remember(presentationID, "")
	s.mu.Unlock()
	return nil
}

// Counts returns how often each deck of a presentation was visited.
func (s *HistoryService) Counts(ctx context.Context, presentationID string) (map[string]int, error) {
	if s.Visits == nil {
		return nil, fmt.Errorf("history: visits repo not configured")
	}
	counts, err := s.Visits.CountByDeck(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}
	return counts, nil
}

// Summary is one presentation with its visit totals and latest visits.
type Summary struct {
	Presentation repository.Presentation
	Visits       int
	Recent       []repository.Visit
}

// Summaries lists every known presentation, most recently opened first,
// with up to recent latest visits each.
func (s *HistoryService) Summaries(ctx context.Context, recent int) ([]Summary, error) {
	if s.Visits == nil || s.Presentations == nil {
		return nil, fmt.Errorf("history: repos not configured")
	}
	all, err := s.Presentations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	out := make([]Summary, 0, len(all))
	for _, p := range all {
		counts, err := s.Visits.CountByDeck(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("count visits %s: %w", p.Path, err)
		}
		sum := Summary{Presentation: p}
		for _, n := range counts {
			sum.Visits += n
		}
		if sum.Recent, err = s.Visits.Recent(ctx, p.ID, recent); err != nil {
			return nil, fmt.Errorf("recent visits %s: %w", p.Path, err)
		}
		out = append(out, sum)
	}
	return out, nil
}

// remember must be called with mu held.
func (s *HistoryService) remember(id, deckID string) {
	if s.lastDeck == nil {
		s.lastDeck = map[string]string{}
	}
	s.lastDeck[id] = deckID
}
