package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/decks/internal/config"
	"github.com/jask/decks/internal/database"
	"github.com/jask/decks/internal/database/repository"
	"github.com/jask/decks/internal/presentation"
	"github.com/jask/decks/internal/service"
	"github.com/jask/decks/internal/tui"
)

func main() {
	ctx := context.Background()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: decks <presentation.md|presentation.toml>\n       decks history")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if os.Args[1] == "history" {
		if err := printHistory(ctx, os.Stdout, cfg.Database.Path); err != nil {
			log.Fatalf("history: %v", err)
		}
		return
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	pres, err := presentation.Load(os.Args[1])
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	opts := []tui.Option{tui.WithLogger(logger), tui.WithConfig(cfg, config.Save)}
	if cfg.Database.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			log.Fatalf("mkdir db dir: %v", err)
		}
		if err := database.RunMigrations(cfg.Database.Path); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()

		history := &service.HistoryService{
			DB:            db,
			Presentations: repository.NewPresentationRepo(db),
			Visits:        repository.NewVisitRepo(db),
		}
		id, last, err := history.Register(ctx, pres.Path, pres.Title, len(pres.Slides))
		if err != nil {
			log.Fatalf("history: %v", err)
		}
		opts = append(opts, tui.WithHistory(history, id), tui.WithResume(last))
	}

	m := tui.New(ctx, pres, cfg.Deck.Options(), opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.SetSend(p.Send)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// openLogger writes structured logs to the configured file; the terminal
// belongs to the program.
func openLogger(c config.LogConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	if c.Path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := tea.LogToFile(c.Path, "decks")
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), func() { _ = f.Close() }, nil
}
