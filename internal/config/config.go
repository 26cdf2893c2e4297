package config

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/rank"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Environment overrides, also read from a .env file in the working directory.
const (
	EnvDB       = "JOBTRACK_DB"
	EnvLog      = "JOBTRACK_LOG"
	EnvLogLevel = "JOBTRACK_LOG_LEVEL"
)

const maxCatalogSize = 500

type Scoring struct {
	UngatedBonuses bool `yaml:"ungated_bonuses"`
}

type Config struct {
	CatalogSize     int     `yaml:"catalog_size"`
	DefaultSort     string  `yaml:"default_sort"`
	MatchesOnly     bool    `yaml:"matches_only"`
	NotificationTTL string  `yaml:"notification_ttl"`
	DigestSize      int     `yaml:"digest_size"`
	LogLevel        string  `yaml:"log_level"`
	DBPath          string  `yaml:"db_path,omitempty"`
	LogFile         string  `yaml:"log_file,omitempty"`
	Scoring         Scoring `yaml:"scoring"`
}

// Sort returns the configured startup sort, Latest when unparseable.
func (c *Config) Sort() rank.Strategy {
	s, err := rank.ParseStrategy(c.DefaultSort)
	if err != nil {
		return rank.Latest
	}
	return s
}

// NotificationDuration returns the toast lifetime, clamped to notify.MaxTTL.
func (c *Config) NotificationDuration() time.Duration {
	d, err := time.ParseDuration(c.NotificationTTL)
	if err != nil {
		return notify.MaxTTL
	}
	return notify.ClampTTL(d)
}

func (c *Config) ScoringOptions() match.Options {
	return match.Options{UngatedBonuses: c.Scoring.UngatedBonuses}
}

// StorePath is the SQLite file holding the workspace state.
func (c *Config) StorePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DataPath()
}

// LogFilePath is where structured logs are written.
func (c *Config) LogFilePath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return LogPath()
}

// Level maps log_level onto a slog level, Info when unknown.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "jobtrack", "config.yaml")
}

func DataPath() string {
	return filepath.Join(xdg.DataHome, "jobtrack", "jobtrack.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "jobtrack", "jobtrack.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file over the embedded defaults, then applies
// environment overrides. A missing file is created from the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := writeDefaults(path); err != nil {
			// Non-fatal: just use embedded defaults
			slog.Warn("could not write default config", "path", path, "err", err)
		}
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		// Keys absent from the file keep their default values.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv loads an optional .env file and applies JOBTRACK_* overrides.
func applyEnv(cfg *Config) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "err", err)
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.CatalogSize < 1 || cfg.CatalogSize > maxCatalogSize {
		return fmt.Errorf("catalog_size must be between 1 and %d, got %d", maxCatalogSize, cfg.CatalogSize)
	}
	if _, err := rank.ParseStrategy(cfg.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	d, err := time.ParseDuration(cfg.NotificationTTL)
	if err != nil {
		return fmt.Errorf("notification_ttl: invalid duration %q", cfg.NotificationTTL)
	}
	if d <= 0 || d > notify.MaxTTL {
		return fmt.Errorf("notification_ttl must be within (0, %s], got %s", notify.MaxTTL, d)
	}
	if cfg.DigestSize < 1 {
		return fmt.Errorf("digest_size must be at least 1, got %d", cfg.DigestSize)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}
	return nil
}
