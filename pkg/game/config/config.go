// Package config loads runtime settings: defaults, then an optional YAML
// file, then environment variables. main applies command-line flags last.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Content sources
const (
	SourceJSON     = "json"
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
)

// Config holds every setting the game reads at start-up
type Config struct {
	Content ContentConfig `yaml:"content"`
	Server  ServerConfig  `yaml:"server"`
	Locale  LocaleConfig  `yaml:"locale"`
	Log     LogConfig     `yaml:"log"`
	Game    GameConfig    `yaml:"game"`
}

// ContentConfig selects where mazes come from and where scores go
type ContentConfig struct {
	Source         string        `yaml:"source"`
	APIURL         string        `yaml:"api_url"`
	APIToken       string        `yaml:"api_token"`
	DataFile       string        `yaml:"data_file"`
	DatabaseURL    string        `yaml:"database_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ServerConfig is the web adapter's listener
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LocaleConfig points gotext at the translation catalogues
type LocaleConfig struct {
	Dir      string `yaml:"dir"`
	Language string `yaml:"language"`
}

// LogConfig controls operational logging
type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// GameConfig tunes sessions started from the command line
type GameConfig struct {
	GameID       int           `yaml:"game_id"`
	Level        string        `yaml:"level"`
	PlayerID     int           `yaml:"player_id"`
	TrapSeconds  int           `yaml:"trap_seconds"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Default returns a config that plays the bundled mazes offline
func Default() Config {
	return Config{
		Content: ContentConfig{
			Source:         SourceJSON,
			DataFile:       "data/store.json",
			RequestTimeout: 10 * time.Second,
		},
		Server: ServerConfig{Addr: ":8080"},
		Locale: LocaleConfig{Dir: "locales", Language: "en"},
		Log:    LogConfig{Format: "text", Level: "info"},
		Game: GameConfig{
			GameID:       1,
			Level:        "FIRST",
			TrapSeconds:  15,
			TickInterval: time.Second,
		},
	}
}

// Load builds a config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str("MAZE_CONTENT_SOURCE", &c.Content.Source)
	str("MAZE_API_URL", &c.Content.APIURL)
	str("MAZE_API_TOKEN", &c.Content.APIToken)
	str("MAZE_DATA_FILE", &c.Content.DataFile)
	str("DATABASE_URL", &c.Content.DatabaseURL)
	str("MAZE_LOCALE", &c.Locale.Language)
	str("MAZE_LOCALE_DIR", &c.Locale.Dir)
	str("MAZE_LOG_FORMAT", &c.Log.Format)
	str("MAZE_LOG_LEVEL", &c.Log.Level)

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("MAZE_PLAYER_ID")); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAZE_PLAYER_ID: %w", err)
		}
		c.Game.PlayerID = id
	}
	if v := strings.TrimSpace(os.Getenv("MAZE_TRAP_SECONDS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAZE_TRAP_SECONDS: %w", err)
		}
		c.Game.TrapSeconds = n
	}
	return nil
}

// Validate reports every problem found, joined
func (c Config) Validate() error {
	var errs []error

	switch c.Content.Source {
	case SourceJSON:
		if c.Content.DataFile == "" {
			errs = append(errs, errors.New("content.data_file is required for the json source"))
		}
	case SourcePostgres:
		if c.Content.DatabaseURL == "" {
			errs = append(errs, errors.New("content.database_url is required for the postgres source"))
		}
	case SourceHTTP:
		if c.Content.APIURL == "" {
			errs = append(errs, errors.New("content.api_url is required for the http source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown content source %q", c.Content.Source))
	}

	if c.Game.TrapSeconds <= 0 {
		errs = append(errs, fmt.Errorf("game.trap_seconds must be positive, got %d", c.Game.TrapSeconds))
	}
	if c.Game.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("game.tick_interval must be positive, got %v", c.Game.TickInterval))
	}
	if c.Game.PlayerID < 0 {
		errs = append(errs, fmt.Errorf("game.player_id must not be negative, got %d", c.Game.PlayerID))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
