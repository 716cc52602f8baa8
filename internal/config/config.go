package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/decks/internal/deck"
)

// Config holds application configuration.
type Config struct {
	Deck     DeckConfig
	Database DatabaseConfig
	Log      LogConfig
}

// DeckConfig holds navigation settings. Durations are in milliseconds.
type DeckConfig struct {
	Selector      string
	OffsetPercent float64 `mapstructure:"offset_percent"`
	DurationMS    int     `mapstructure:"duration_ms"`
	Easing        string
	DelayMS       int `mapstructure:"delay_ms"`
	Autoscroll    bool
}

// DatabaseConfig holds sqlite settings. An empty path disables history.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds the log file location and level.
type LogConfig struct {
	Path  string
	Level string
}

// Options maps the deck section onto navigation options.
func (c DeckConfig) Options() deck.Options {
	return deck.Options{
		DecksSelector:     c.Selector,
		OffsetPercent:     c.OffsetPercent,
		AnimationDuration: time.Duration(c.DurationMS) * time.Millisecond,
		Easing:            c.Easing,
		SnapDelay:         time.Duration(c.DelayMS) * time.Millisecond,
		Autoscroll:        deck.Bool(c.Autoscroll),
	}
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "decks")
}

// Load reads configuration from file and env. Env var overrides use prefix DECKS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("deck.selector", deck.DefaultDecksSelector)
	v.SetDefault("deck.offset_percent", deck.DefaultOffsetPercent)
	v.SetDefault("deck.duration_ms", int(deck.DefaultAnimationDuration/time.Millisecond))
	v.SetDefault("deck.easing", deck.DefaultEasing)
	v.SetDefault("deck.delay_ms", int(deck.DefaultSnapDelay/time.Millisecond))
	v.SetDefault("deck.autoscroll", true)
	v.SetDefault("database.path", filepath.Join(dataDir(), "decks.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "decks.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DECKS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "decks"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DECKS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("DECKS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "decks", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("deck.selector", cfg.Deck.Selector)
	v.Set("deck.offset_percent", cfg.Deck.OffsetPercent)
	v.Set("deck.duration_ms", cfg.Deck.DurationMS)
	v.Set("deck.easing", cfg.Deck.Easing)
	v.Set("deck.delay_ms", cfg.Deck.DelayMS)
	v.Set("deck.autoscroll", cfg.Deck.Autoscroll)
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
