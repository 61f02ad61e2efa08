// Package config provides configuration loading and validation for the fund
// console. Values come from a JSON file, environment variables, or both;
// environment wins.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds every tunable for the server and CLI. All fields are
// optional; missing values use defaults.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`  // debug|info|warn|error
	LogFormat   string `json:"log_format,omitempty"` // json|console

	// External services
	GeminiAPIKey       string  `json:"gemini_api_key,omitempty"`
	GeocoderURL        string  `json:"geocoder_url,omitempty"`
	GeocoderAPIKey     string  `json:"geocoder_api_key,omitempty"`
	GeocoderConfidence float64 `json:"geocoder_confidence,omitempty"` // accept threshold, 0..1

	// Auth (tokens come from the managed auth provider; we only verify)
	JWTSecret string `json:"jwt_secret,omitempty"`

	// Draft persistence
	DraftBackend       string `json:"draft_backend,omitempty"` // memory|sqlite|redis
	DraftSQLitePath    string `json:"draft_sqlite_path,omitempty"`
	RedisAddr          string `json:"redis_addr,omitempty"`
	RedisPassword      string `json:"redis_password,omitempty"`
	RedisDB            int    `json:"redis_db,omitempty"`
	DebounceMillis     int    `json:"debounce_millis,omitempty"`
	PasteReleaseMillis int    `json:"paste_release_millis,omitempty"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Port:            8080,
		LogLevel:        "info",
		LogFormat:       "console",
		DraftBackend:    "sqlite",
		DraftSQLitePath: "data/drafts.db",
	}
}

// Load reads configuration from a JSON file (optional), then applies
// environment overrides on top of defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt(&c.Port, "PORT")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeocoderURL, "GEOCODER_URL")
	setString(&c.GeocoderAPIKey, "GEOCODER_API_KEY")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.DraftBackend, "DRAFT_BACKEND")
	setString(&c.DraftSQLitePath, "DRAFT_SQLITE_PATH")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setInt(&c.RedisDB, "REDIS_DB")
	setInt(&c.DebounceMillis, "DRAFT_DEBOUNCE_MILLIS")
	setInt(&c.PasteReleaseMillis, "PASTE_RELEASE_MILLIS")

	if v := os.Getenv("GEOCODER_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.GeocoderConfidence = f
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 1..65535")
	}
	if c.GeocoderConfidence < 0 || c.GeocoderConfidence > 1 {
		return fmt.Errorf("config error: 'geocoder_confidence' must be in 0..1")
	}
	switch c.DraftBackend {
	case "", "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("config error: unknown draft_backend %q", c.DraftBackend)
	}
	if c.DraftBackend == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("config error: draft_backend=redis requires 'redis_addr'")
	}
	if c.DebounceMillis < 0 || c.PasteReleaseMillis < 0 {
		return fmt.Errorf("config error: debounce and paste release must be non-negative")
	}
	return nil
}
