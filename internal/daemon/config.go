// Package daemon manages the Exhale daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Store         StoreConfig         `toml:"store"`
	Progress      ProgressConfig      `toml:"progress"`
	Notifications NotificationsConfig `toml:"notifications"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
	Logging       LoggingConfig       `toml:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StoreConfig controls the record store location.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// ProgressConfig controls the derived-statistics constants and the
// auto-refresh cadence. The per-cigarette constants are configuration,
// not code, so regional pricing never needs a rebuild.
type ProgressConfig struct {
	PricePerCigarette           float64 `toml:"price_per_cigarette"`
	MinutesRegainedPerCigarette float64 `toml:"minutes_regained_per_cigarette"`
	MgNicotinePerCigarette      float64 `toml:"mg_nicotine_per_cigarette"`
	RefreshInterval             string  `toml:"refresh_interval"`
}

// NotificationsConfig controls the notification policy.
type NotificationsConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := exhaleHome()
	return Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        7420,
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Dir: filepath.Join(homeDir, "data"),
		},
		Progress: ProgressConfig{
			PricePerCigarette:           8,
			MinutesRegainedPerCigarette: 11,
			MgNicotinePerCigarette:      0.8,
			RefreshInterval:             "30m",
		},
		Notifications: NotificationsConfig{
			MaxPerDay:  1,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "exhale.log"),
		},
	}
}

// LoadConfig reads config from ~/.exhale/config.toml, falling back to
// defaults when the file is absent.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(exhaleHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.exhale/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(exhaleHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// Interval parses the configured auto-refresh cadence.
func (c ProgressConfig) Interval() time.Duration {
	return parseDuration(c.RefreshInterval, 30*time.Minute)
}

// parseDuration parses a duration string, returning a fallback on error.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// exhaleHome returns the Exhale data directory.
func exhaleHome() string {
	if env := os.Getenv("EXHALE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".exhale")
}
