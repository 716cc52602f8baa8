package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/decks/internal/database"
	"github.com/jask/decks/internal/database/repository"
)

func newHistory(t *testing.T) (*HistoryService, *repository.VisitRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	t.Log("migrations applied")

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	visits := repository.NewVisitRepo(db)
	svc := &HistoryService{DB: db, Presentations: repository.NewPresentationRepo(db), Visits: visits}
	return svc, visits
}

func TestHistoryResumeAndVisits(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc, visits := newHistory(t)

	id, last, err := svc.Register(ctx, "talk.md", "Talk", 3)
	require.NoError(t, err)
	require.Equal(t, repository.PresentationID("talk.md"), id)
	require.Empty(t, last)

	wrote, err := svc.Visit(ctx, id, "intro", 0, "resume")
	require.NoError(t, err)
	require.True(t, wrote)

	wrote, err = svc.Visit(ctx, id, "intro", 0, "snap")
	require.NoError(t, err)
	require.False(t, wrote, "staying on the same deck is not a visit")

	_, err = svc.Visit(ctx, id, "deck-1", 1, "key")
	require.NoError(t, err)

	recent, err := visits.Recent(ctx, id, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "deck-1", recent[0].DeckID)
	require.Equal(t, "key", recent[0].Via)
	require.NotEmpty(t, recent[0].ID)

	counts, err := svc.Counts(ctx, id)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"intro": 1, "deck-1": 1}, counts)

	// a reopened presentation resumes at the last deck
	fresh := &HistoryService{Presentations: svc.Presentations, Visits: svc.Visits}
	_, last, err = fresh.Register(ctx, "talk.md", "Talk v2", 4)
	require.NoError(t, err)
	require.Equal(t, "deck-1", last)

	p, err := svc.Presentations.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Talk v2", p.Title)
	require.Equal(t, 4, p.DeckCount)
}

func TestHistoryReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, visits := newHistory(t)
	id, _, err := svc.Register(ctx, "talk.md", "Talk", 2)
	require.NoError(t, err)
	_, err = svc.Visit(ctx, id, "a", 0, "key")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, id))
	recent, err := visits.Recent(ctx, id, 0)
	require.NoError(t, err)
	require.Empty(t, recent)

	_, last, err := svc.Register(ctx, "talk.md", "Talk", 2)
	require.NoError(t, err)
	require.Empty(t, last)

	wrote, err := svc.Visit(ctx, id, "a", 0, "key")
	require.NoError(t, err)
	require.True(t, wrote, "reset forgets the current deck")
}

func TestHistorySummaries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newHistory(t)
	talk, _, err := svc.Register(ctx, "talk.md", "Talk", 3)
	require.NoError(t, err)
	for _, d := range []string{"intro", "middle", "intro"} {
		_, err = svc.Visit(ctx, talk, d, 0, "key")
		require.NoError(t, err)
	}
	_, _, err = svc.Register(ctx, "empty.md", "Empty", 1)
	require.NoError(t, err)

	sums, err := svc.Summaries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	byTitle := map[string]Summary{}
	for _, s := range sums {
		byTitle[s.Presentation.Title] = s
	}
	require.Equal(t, 3, byTitle["Talk"].Visits)
	require.Len(t, byTitle["Talk"].Recent, 2)
	require.Equal(t, "intro", byTitle["Talk"].Recent[0].DeckID)
	require.Equal(t, 0, byTitle["Empty"].Visits)
	require.Empty(t, byTitle["Empty"].Recent)
}

func TestHistoryUnconfigured(t *testing.T) {
	ctx := context.Background()
	svc := &HistoryService{}
	_, _, err := svc.Register(ctx, "x", "", 0)
	require.Error(t, err)
	_, err = svc.Visit(ctx, "id", "d", 0, "")
	require.Error(t, err)
	require.Error(t, svc.Reset(ctx, "id"))
	_, err = svc.Counts(ctx, "id")
	require.Error(t, err)
	_, err = svc.Summaries(ctx, 1)
	require.Error(t, err)
}
