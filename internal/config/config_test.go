package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DECKS_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".skrollr-deck", cfg.Deck.Selector)
	require.Equal(t, 15.0, cfg.Deck.OffsetPercent)
	require.Equal(t, 600, cfg.Deck.DurationMS)
	require.Equal(t, "quadratic", cfg.Deck.Easing)
	require.Equal(t, 500, cfg.Deck.DelayMS)
	require.True(t, cfg.Deck.Autoscroll)
	require.Equal(t, filepath.Join(home, ".local", "share", "decks", "decks.db"), cfg.Database.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[deck]
offset_percent = 25
duration_ms = 300
easing = "cubic"
autoscroll = false
`), 0o644))
	t.Setenv("DECKS_CONFIG", path)
	t.Setenv("DECKS_DECK_DELAY_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 25.0, cfg.Deck.OffsetPercent)
	require.Equal(t, 250, cfg.Deck.DelayMS)
	require.False(t, cfg.Deck.Autoscroll)

	s := cfg.Deck.Options().Settings()
	require.Equal(t, 300*time.Millisecond, s.AnimationDuration)
	require.Equal(t, 250*time.Millisecond, s.SnapDelay)
	require.Equal(t, "cubic", s.Easing)
	require.False(t, s.Autoscroll, "explicit false survives the merge")
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("DECKS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("DECKS_CONFIG", path)

	cfg := Config{
		Deck:     DeckConfig{Selector: ".slide", OffsetPercent: 10, DurationMS: 400, Easing: "swing", DelayMS: 700, Autoscroll: true},
		Database: DatabaseConfig{Path: "/tmp/decks.db"},
		Log:      LogConfig{Path: "/tmp/decks.log", Level: "debug"},
	}
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
