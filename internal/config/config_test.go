package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DraftBackend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadFromJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": 9090,
		"draft_backend": "memory",
		"geocoder_url": "https://geo.example.com",
		"geocoder_confidence": 0.75
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "memory", cfg.DraftBackend)
	assert.Equal(t, "https://geo.example.com", cfg.GeocoderURL)
	assert.InDelta(t, 0.75, cfg.GeocoderConfidence, 0.001)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9090}`), 0o644))

	t.Setenv("PORT", "7070")
	t.Setenv("DRAFT_BACKEND", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "memory", cfg.DraftBackend)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Port = -1 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"bad confidence", func(c *Config) { c.GeocoderConfidence = 1.5 }, true},
		{"unknown backend", func(c *Config) { c.DraftBackend = "etcd" }, true},
		{"redis without addr", func(c *Config) { c.DraftBackend = "redis" }, true},
		{"redis with addr", func(c *Config) { c.DraftBackend = "redis"; c.RedisAddr = "localhost:6379" }, false},
		{"negative debounce", func(c *Config) { c.DebounceMillis = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
