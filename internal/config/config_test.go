package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheuskafuri/jobtrack/internal/rank"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.CatalogSize != 60 {
		t.Errorf("expected catalog_size 60, got %d", cfg.CatalogSize)
	}
	if cfg.DigestSize != 10 {
		t.Errorf("expected digest_size 10, got %d", cfg.DigestSize)
	}
	if cfg.Sort() != rank.Latest {
		t.Errorf("expected latest sort, got %q", cfg.Sort())
	}
	if cfg.Scoring.UngatedBonuses {
		t.Error("expected gated bonuses by default")
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults fail validation: %v", err)
	}
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	content := `default_sort: score
scoring:
  ungated_bonuses: true
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sort() != rank.Score {
		t.Errorf("expected score sort, got %q", cfg.DefaultSort)
	}
	if !cfg.ScoringOptions().UngatedBonuses {
		t.Error("expected ungated bonuses from file")
	}
	if cfg.CatalogSize != 60 {
		t.Errorf("expected default catalog_size kept, got %d", cfg.CatalogSize)
	}
}

func TestLoadNonexistentWritesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CatalogSize != 60 {
		t.Errorf("expected defaults, got catalog_size %d", cfg.CatalogSize)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected default config written: %v", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(cfgPath, []byte("catalog_size: 0\n"), 0o644)

	if _, err := Load(cfgPath); err == nil {
		t.Error("expected validation error for catalog_size 0")
	}
}

func TestEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvDB, "/tmp/elsewhere.db")
	t.Setenv(EnvLog, "/tmp/jobtrack-test.log")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorePath() != "/tmp/elsewhere.db" {
		t.Errorf("expected env db path, got %s", cfg.StorePath())
	}
	if cfg.LogFilePath() != "/tmp/jobtrack-test.log" {
		t.Errorf("expected env log path, got %s", cfg.LogFilePath())
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Level())
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// Setenv registers cleanup; Unsetenv lets godotenv fill the variable.
	t.Setenv(EnvDB, "")
	os.Unsetenv(EnvDB)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvDB+"=/data/from-dotenv.db\n"), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorePath() != "/data/from-dotenv.db" {
		t.Errorf("expected .env db path, got %s", cfg.StorePath())
	}
}

func TestStorePathDefault(t *testing.T) {
	cfg := &Config{}
	if cfg.StorePath() != DataPath() {
		t.Errorf("expected DataPath, got %s", cfg.StorePath())
	}
	if cfg.LogFilePath() != LogPath() {
		t.Errorf("expected LogPath, got %s", cfg.LogFilePath())
	}
}

func TestNotificationDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"1500ms", 1500 * time.Millisecond},
		{"3s", 3 * time.Second},
		{"10s", 3 * time.Second},
		{"soon", 3 * time.Second},
	}
	for _, tt := range tests {
		cfg := &Config{NotificationTTL: tt.input}
		if got := cfg.NotificationDuration(); got != tt.want {
			t.Errorf("NotificationDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{CatalogSize: 60, DefaultSort: "latest", NotificationTTL: "3s", DigestSize: 10, LogLevel: "info"}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"catalog too large", func(c *Config) { c.CatalogSize = 501 }, true},
		{"unknown sort", func(c *Config) { c.DefaultSort = "alphabetical" }, true},
		{"ttl above max", func(c *Config) { c.NotificationTTL = "5s" }, true},
		{"ttl zero", func(c *Config) { c.NotificationTTL = "0s" }, true},
		{"ttl garbage", func(c *Config) { c.NotificationTTL = "later" }, true},
		{"digest zero", func(c *Config) { c.DigestSize = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"upper-case level", func(c *Config) { c.LogLevel = "WARN" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
