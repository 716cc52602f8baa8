package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/decks/internal/database"
	"github.com/jask/decks/internal/database/repository"
	"github.com/jask/decks/internal/service"
)

// recentVisits is how many of a presentation's latest visits are listed.
const recentVisits = 3

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cell = lipgloss.NewStyle().Padding(0, 1)

// printHistory lists every presentation the history database knows about.
func printHistory(ctx context.Context, w io.Writer, dbPath string) error {
	if dbPath == "" {
		return errors.New("database path not configured")
	}
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		_, err := fmt.Fprintln(w, "no history yet")
		return err
	}
	if err := database.RunMigrations(dbPath); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := &service.HistoryService{
		DB:            db,
		Presentations: repository.NewPresentationRepo(db),
		Visits:        repository.NewVisitRepo(db),
	}
	sums, err := svc.Summaries(ctx, recentVisits)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, historyTable(sums))
	return err
}

func historyTable(sums []service.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PRESENTATION", "DECKS", "LAST DECK", "VISITS", "RECENT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cell
		})
	for _, s := range sums {
		last := "-"
		if s.Presentation.LastDeck != nil {
			last = "#" + *s.Presentation.LastDeck
		}
		recent := make([]string, len(s.Recent))
		for i, v := range s.Recent {
			recent[i] = "#" + v.DeckID
		}
		title := s.Presentation.Title
		if title == "" {
			title = s.Presentation.Path
		}
		t.Row(title, strconv.Itoa(s.Presentation.DeckCount), last, strconv.Itoa(s.Visits), strings.Join(recent, " "))
	}
	return t.String()
}
