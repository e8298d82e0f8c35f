// Package config holds server settings and simulation defaults, optionally
// loaded from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/pkg/model"
)

// ServerConfig holds configuration for the simulation server.
type ServerConfig struct {
	Addr               string `yaml:"addr"`                // Listen address (default ":8080")
	LogLevel           string `yaml:"log_level"`           // debug, info, warn, error
	LogFormat          string `yaml:"log_format"`          // text, json
	DBPath             string `yaml:"db_path"`             // SQLite path (default ~/.cpusim/cpusim.db, ":memory:" for testing)
	TraceFile          string `yaml:"trace_file"`          // OpenTelemetry span output; "" disables, "-" is stderr
	CompareParallelism int    `yaml:"compare_parallelism"` // concurrent runs per comparison
	MaxTicks           int    `yaml:"max_ticks"`           // upper bound on max(arrival) + sum(burst) per request
	MaxBodyBytes       int64  `yaml:"max_body_bytes"`      // request body limit
}

// Request limits applied by the server when none are configured.
const (
	DefaultMaxTicks     = 100_000
	DefaultMaxBodyBytes = 1 << 20
)

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:               ":8080",
		LogLevel:           "info",
		LogFormat:          "text",
		DBPath:             DefaultDBPath(),
		CompareParallelism: runtime.NumCPU(),
		MaxTicks:           DefaultMaxTicks,
		MaxBodyBytes:       DefaultMaxBodyBytes,
	}
}

// DefaultDBPath returns ~/.cpusim/cpusim.db, or a relative path when the
// home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cpusim.db"
	}
	return filepath.Join(home, ".cpusim", "cpusim.db")
}

// SimulationDefaults are used by the CLI when a flag is not given.
type SimulationDefaults struct {
	Algorithm string `yaml:"algorithm"`
	Modality  string `yaml:"modality"`
	Quantum   int    `yaml:"quantum"`
}

// DefaultSimulationDefaults returns FCFS with a quantum of 2 for Round-Robin.
func DefaultSimulationDefaults() SimulationDefaults {
	return SimulationDefaults{Algorithm: "fcfs", Modality: "nonpreemptive", Quantum: 2}
}

// File is the layout of a cpusim.yaml config file.
type File struct {
	Simulation SimulationDefaults `yaml:"simulation"`
	Server     ServerConfig       `yaml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{Simulation: DefaultSimulationDefaults(), Server: DefaultServerConfig()}
}

// LoadFile reads path over the defaults and validates the result.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Validate reports every invalid setting.
func (f *File) Validate() error {
	var errs []error
	if _, err := model.ParseAlgorithm(f.Simulation.Algorithm); err != nil {
		errs = append(errs, err)
	}
	if _, err := model.ParseModality(f.Simulation.Modality); err != nil {
		errs = append(errs, err)
	}
	if f.Simulation.Quantum < 0 {
		errs = append(errs, &model.ConfigurationError{Field: "simulation.quantum", Reason: "must be >= 0"})
	}
	if err := f.Server.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks the server settings.
func (c ServerConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, &model.ConfigurationError{Field: "server.addr", Reason: "must not be empty"})
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, &model.ConfigurationError{Field: "server.log_format", Reason: err.Error()})
	}
	if c.CompareParallelism < 0 {
		errs = append(errs, &model.ConfigurationError{Field: "server.compare_parallelism", Reason: "must be >= 0"})
	}
	if c.MaxTicks <= 0 {
		errs = append(errs, &model.ConfigurationError{Field: "server.max_ticks", Reason: "must be > 0"})
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, &model.ConfigurationError{Field: "server.max_body_bytes", Reason: "must be > 0"})
	}
	return errors.Join(errs...)
}
