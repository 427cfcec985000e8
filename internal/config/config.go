// Package config loads the settings shared by the profiling harnesses.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Run     RunConfig     `toml:"run" yaml:"run"`
	Profile ProfileConfig `toml:"profile" yaml:"profile"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type RunConfig struct {
	Rounds            int  `toml:"rounds" yaml:"rounds"`
	Iterations        int  `toml:"iterations" yaml:"iterations"`
	Entities          int  `toml:"entities" yaml:"entities"` // per iteration
	PartitionCapacity int  `toml:"partition_capacity" yaml:"partition_capacity"`
	StrictInvariants  bool `toml:"strict_invariants" yaml:"strict_invariants"`
}

type ProfileConfig struct {
	Mode string `toml:"mode" yaml:"mode"` // cpu, mem, allocs, heap, block, trace or none
	Path string `toml:"path" yaml:"path"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

var profileModes = map[string]bool{
	"cpu": true, "mem": true, "allocs": true, "heap": true,
	"block": true, "trace": true, "none": true,
}

// Load reads a .toml, .yaml or .yml file over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, eris.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate rejects settings the harnesses cannot run with.
func (c *Config) Validate() error {
	if c.Run.Rounds < 1 || c.Run.Iterations < 1 || c.Run.Entities < 1 {
		return eris.Errorf("run: rounds, iterations and entities must be positive, got %d/%d/%d",
			c.Run.Rounds, c.Run.Iterations, c.Run.Entities)
	}
	if c.Run.PartitionCapacity < 0 {
		return eris.Errorf("run: partition_capacity must not be negative, got %d", c.Run.PartitionCapacity)
	}
	if !profileModes[c.Profile.Mode] {
		return eris.Errorf("profile: unknown mode %q", c.Profile.Mode)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return eris.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Run: RunConfig{
			Rounds:            50,
			Iterations:        10000,
			Entities:          1000,
			PartitionCapacity: 1024,
		},
		Profile: ProfileConfig{
			Mode: "allocs",
			Path: ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
