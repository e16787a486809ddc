// Package config loads intmm settings from a YAML file and INTMM_*
// environment variables.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by cmd/intmm)
//  2. Environment variables (INTMM_*)
//  3. Config file
//  4. Built-in defaults
//
// Example file:
//
//	acceleration: auto   # auto | on | off
//	tuning:
//	  workers: 8
//	  block_size: 64
//	  parallel_threshold: 262144
//
// Environment variables:
//   - INTMM_ACCELERATION=auto|on|off
//   - INTMM_WORKERS=8
//   - INTMM_BLOCK_SIZE=64
//   - INTMM_PARALLEL_THRESHOLD=262144
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/csotherden/gorgonia-intmm/intmm"
)

// Acceleration modes.
const (
	// AccelAuto enables acceleration when the build carries it.
	AccelAuto = "auto"
	// AccelOn requires acceleration; building a Selector fails without it.
	AccelOn = "on"
	// AccelOff always uses the naive strategy.
	AccelOff = "off"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the file and environment configuration of a Multiplier.
type Config struct {
	Acceleration string       `yaml:"acceleration"`
	Tuning       intmm.Tuning `yaml:"tuning"`
}

// LoadDefaults returns the built-in configuration.
func LoadDefaults() *Config {
	return &Config{
		Acceleration: AccelAuto,
		Tuning:       intmm.DefaultTuning(),
	}
}

// LoadFromFile layers the YAML file at path over the defaults. A missing
// file (or an empty path) yields the defaults. Zero or empty fields in the
// file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	cfg := LoadDefaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.Acceleration != "" {
		cfg.Acceleration = fileCfg.Acceleration
	}
	if fileCfg.Tuning.Workers > 0 {
		cfg.Tuning.Workers = fileCfg.Tuning.Workers
	}
	if fileCfg.Tuning.BlockSize > 0 {
		cfg.Tuning.BlockSize = fileCfg.Tuning.BlockSize
	}
	if fileCfg.Tuning.ParallelThreshold > 0 {
		cfg.Tuning.ParallelThreshold = fileCfg.Tuning.ParallelThreshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvVars overrides cfg with any INTMM_* variables that are set.
func ApplyEnvVars(cfg *Config) {
	cfg.Acceleration = getEnv("INTMM_ACCELERATION", cfg.Acceleration)
	cfg.Tuning.Workers = getEnvInt("INTMM_WORKERS", cfg.Tuning.Workers)
	cfg.Tuning.BlockSize = getEnvInt("INTMM_BLOCK_SIZE", cfg.Tuning.BlockSize)
	cfg.Tuning.ParallelThreshold = getEnvInt("INTMM_PARALLEL_THRESHOLD", cfg.Tuning.ParallelThreshold)
}

// Validate checks the acceleration mode and tuning values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Acceleration) {
	case AccelAuto, AccelOn, AccelOff:
	default:
		return fmt.Errorf("%w: acceleration must be auto, on or off, got %q", ErrInvalidConfig, c.Acceleration)
	}
	if c.Tuning.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Tuning.Workers)
	}
	if c.Tuning.BlockSize < 1 {
		return fmt.Errorf("%w: block_size must be >= 1, got %d", ErrInvalidConfig, c.Tuning.BlockSize)
	}
	if c.Tuning.ParallelThreshold < 0 {
		return fmt.Errorf("%w: parallel_threshold must be >= 0, got %d", ErrInvalidConfig, c.Tuning.ParallelThreshold)
	}
	return nil
}

// Selector builds a Selector for the configured mode. Mode "on" fails with
// intmm.ErrAccelerationUnsupported in builds without the blocked strategy.
func (c *Config) Selector() (*intmm.Selector, error) {
	switch strings.ToLower(c.Acceleration) {
	case AccelAuto:
		return intmm.NewSelector(true), nil
	case AccelOff:
		return intmm.NewSelector(false), nil
	case AccelOn:
		s := intmm.NewSelector(false)
		if err := s.Enable(true); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown acceleration mode %q", ErrInvalidConfig, c.Acceleration)
}

// Options validates c and returns the intmm options it describes.
func (c *Config) Options() ([]intmm.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	sel, err := c.Selector()
	if err != nil {
		return nil, err
	}
	return []intmm.Option{
		intmm.WithSelector(sel),
		intmm.WithTuning(c.Tuning),
		intmm.WithParallelThreshold(c.Tuning.ParallelThreshold),
	}, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("acceleration=%s workers=%d block_size=%d parallel_threshold=%d",
		c.Acceleration, c.Tuning.Workers, c.Tuning.BlockSize, c.Tuning.ParallelThreshold)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
