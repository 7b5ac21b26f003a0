// Package config loads the poker-odds HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "poker-odds.hcl"

// Config represents the complete configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	Presets    []PresetConfig      `hcl:"preset,block"`
}

// SimulationSettings are the defaults for equity runs
type SimulationSettings struct {
	Iterations int `hcl:"iterations,optional"`
	ChunkSize  int `hcl:"chunk_size,optional"`
	Workers    int `hcl:"workers,optional"`
	Players    int `hcl:"players,optional"`
}

// ServerSettings contains HTTP service configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// PresetConfig adds or overrides a named range
type PresetConfig struct {
	Name  string `hcl:"name,label"`
	Range string `hcl:"range"`
}

// Default returns the default configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Iterations == 0 {
		c.Simulation.Iterations = 10000
	}
	if c.Simulation.ChunkSize == 0 {
		c.Simulation.ChunkSize = analysis.DefaultChunkSize
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 1
	}
	if c.Simulation.Players == 0 {
		c.Simulation.Players = analysis.MinPlayers
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Iterations <= 0 {
		return fmt.Errorf("simulation: iterations must be positive, got %d", s.Iterations)
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("simulation: chunk_size must be positive, got %d", s.ChunkSize)
	}
	if s.Workers < 1 {
		return fmt.Errorf("simulation: workers must be at least 1, got %d", s.Workers)
	}
	if s.Players < analysis.MinPlayers || s.Players > analysis.MaxPlayers {
		return fmt.Errorf("simulation: players must be between %d and %d, got %d",
			analysis.MinPlayers, analysis.MaxPlayers, s.Players)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if seen[p.Name] {
			return fmt.Errorf("preset %s: defined more than once", p.Name)
		}
		seen[p.Name] = true
		r := analysis.ParseRange(p.Range)
		if err := r.Err(); err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
		if r.Size() == 0 {
			return fmt.Errorf("preset %s: range is empty", p.Name)
		}
	}
	return nil
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// PresetBook returns the built-in presets with the file's presets applied.
func (c *Config) PresetBook() *analysis.PresetBook {
	overrides := make(map[string]string, len(c.Presets))
	for _, p := range c.Presets {
		overrides[p.Name] = p.Range
	}
	return analysis.NewPresetBook(overrides)
}
