package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poker-odds.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10000, cfg.Simulation.Iterations)
	assert.Equal(t, analysis.DefaultChunkSize, cfg.Simulation.ChunkSize)
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
simulation {
  iterations = 50000
  workers    = 4
  players    = 6
}

server {
  port      = 9090
  log_level = "debug"
}

preset "my-open" {
  range = "77+, ATs+, KQs"
}

preset "utg-tight" {
  range = "QQ+"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50000, cfg.Simulation.Iterations)
	assert.Equal(t, analysis.DefaultChunkSize, cfg.Simulation.ChunkSize)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, 6, cfg.Simulation.Players)
	assert.Equal(t, "localhost:9090", cfg.ServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)

	book := cfg.PresetBook()
	got, ok := book.Lookup("utg-tight")
	require.True(t, ok)
	assert.Equal(t, "QQ+", got)
	_, ok = book.Lookup("my-open")
	assert.True(t, ok)
	_, ok = book.Lookup("btn-wide")
	assert.True(t, ok)
}

func TestLoadParseError(t *testing.T) {
	t.Parallel()
	_, err := Load(writeConfig(t, `simulation {`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `bogus = 1`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"iterations", func(c *Config) { c.Simulation.Iterations = -1 }},
		{"chunk size", func(c *Config) { c.Simulation.ChunkSize = -5 }},
		{"workers", func(c *Config) { c.Simulation.Workers = -1 }},
		{"players", func(c *Config) { c.Simulation.Players = 12 }},
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"log level", func(c *Config) { c.Server.LogLevel = "loud" }},
		{"bad preset", func(c *Config) { c.Presets = []PresetConfig{{Name: "x", Range: "AA, QX"}} }},
		{"empty preset", func(c *Config) { c.Presets = []PresetConfig{{Name: "x", Range: " "}} }},
		{"duplicate preset", func(c *Config) {
			c.Presets = []PresetConfig{{Name: "x", Range: "AA"}, {Name: "x", Range: "KK"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
