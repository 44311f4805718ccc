// Package config loads the flowtrace configuration file.
//
// The file is YAML; every field is optional and falls back to the value set by
// ApplyDefaults. Command-line flags override file values after loading.
//
//	log:
//	  level: info
//	  no_color: false
//	trace:
//	  algorithm: edmonds-karp
//	  max_steps: 100000
//	  max_nodes: 2048
//	  duplicates: sum
//	  verbose: false
//	server:
//	  addr: ":8080"
//	  mode: release
//	  max_stored: 256
//	  max_body_bytes: 1048576
//	  read_timeout: 10s
//	  write_timeout: 30s
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/flowtrace/flow"
	"github.com/katalvlaran/flowtrace/internal/logging"
	"github.com/katalvlaran/flowtrace/network"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Trace  TraceConfig  `yaml:"trace"`
	Server ServerConfig `yaml:"server"`
}

// LogConfig controls the console logger.
type LogConfig struct {
	Level   string `yaml:"level"`
	NoColor bool   `yaml:"no_color"`
}

// TraceConfig holds the defaults applied to every engine run.
type TraceConfig struct {
	Algorithm  string `yaml:"algorithm"`
	MaxSteps   int    `yaml:"max_steps"`
	MaxNodes   int    `yaml:"max_nodes"`
	Duplicates string `yaml:"duplicates"`
	Verbose    bool   `yaml:"verbose"`
}

// ServerConfig configures the HTTP trace service.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	Mode         string        `yaml:"mode"`
	MaxStored    int           `yaml:"max_stored"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()

	return c
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	// Trace
	if c.Trace.Algorithm == "" {
		c.Trace.Algorithm = string(flow.EdmondsKarpAlgorithm)
	}
	if c.Trace.MaxSteps == 0 {
		c.Trace.MaxSteps = 100000
	}
	if c.Trace.MaxNodes == 0 {
		c.Trace.MaxNodes = 2048
	}
	if c.Trace.Duplicates == "" {
		c.Trace.Duplicates = network.DuplicateSum.String()
	}

	// Server
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.MaxStored <= 0 {
		c.Server.MaxStored = 256
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if _, err := flow.ParseAlgorithm(c.Trace.Algorithm); err != nil {
		return fmt.Errorf("%w: trace.algorithm: %v", ErrInvalidConfig, err)
	}
	if c.Trace.MaxSteps < 0 {
		return fmt.Errorf("%w: trace.max_steps cannot be negative (%d)", ErrInvalidConfig, c.Trace.MaxSteps)
	}
	if c.Trace.MaxNodes < 0 {
		return fmt.Errorf("%w: trace.max_nodes cannot be negative (%d)", ErrInvalidConfig, c.Trace.MaxNodes)
	}
	if _, err := network.ParseDuplicatePolicy(c.Trace.Duplicates); err != nil {
		return fmt.Errorf("%w: trace.duplicates: %v", ErrInvalidConfig, err)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: server.mode %q (want debug, release or test)", ErrInvalidConfig, c.Server.Mode)
	}

	return nil
}

// Load reads path, applies defaults and validates. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML configuration, rejecting unknown keys.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// FlowOptions builds the engine options described by the trace section.
// Call it on a validated configuration.
func (c *Config) FlowOptions(logger zerolog.Logger) flow.FlowOptions {
	return flow.FlowOptions{
		Logger:   logger,
		Verbose:  c.Trace.Verbose,
		MaxSteps: c.Trace.MaxSteps,
		MaxNodes: c.Trace.MaxNodes,
	}
}

// Algorithm returns the configured default engine. Call it on a validated configuration.
func (c *Config) Algorithm() flow.Algorithm {
	alg, _ := flow.ParseAlgorithm(c.Trace.Algorithm)

	return alg
}

// DuplicatePolicy returns the configured duplicate-edge policy. Call it on a
// validated configuration.
func (c *Config) DuplicatePolicy() network.DuplicatePolicy {
	p, _ := network.ParseDuplicatePolicy(c.Trace.Duplicates)

	return p
}
