package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/decks/internal/database"
	"github.com/jask/decks/internal/database/repository"
	"github.com/jask/decks/internal/service"
)

func TestPrintHistoryWithoutDatabase(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printHistory(context.Background(), &out, filepath.Join(t.TempDir(), "none.db")))
	require.Equal(t, "no history yet\n", out.String())

	require.Error(t, printHistory(context.Background(), &out, ""))
}

func TestPrintHistoryListsPresentations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)

	svc := &service.HistoryService{DB: db, Presentations: repository.NewPresentationRepo(db), Visits: repository.NewVisitRepo(db)}
	id, _, err := svc.Register(ctx, "talk.md", "Talk", 3)
	require.NoError(t, err)
	for _, d := range []string{"intro", "middle"} {
		_, err = svc.Visit(ctx, id, d, 0, "key")
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	var out bytes.Buffer
	require.NoError(t, printHistory(ctx, &out, path))
	text := out.String()
	require.Contains(t, text, "PRESENTATION")
	require.Contains(t, text, "Talk")
	require.Contains(t, text, "#middle #intro")
}
