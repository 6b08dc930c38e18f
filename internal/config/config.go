// Package config reads gotruss settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvTolerance  = "GOTRUSS_TOLERANCE"
	EnvLogLevel   = "GOTRUSS_LOG_LEVEL"
	EnvOutputDir  = "GOTRUSS_OUTPUT_DIR"
	EnvForceUnit  = "GOTRUSS_FORCE_UNIT"
	EnvLengthUnit = "GOTRUSS_LENGTH_UNIT"
)

// DefaultEnvFile is read when no file is named and it exists
const DefaultEnvFile = ".env"

// Config holds the resolved settings
type Config struct {
	Tolerance  float64   // Equilibrium closure and zero-force tolerance
	LogLevel   log.Level // Minimum level written to stderr
	OutputDir  string    // Directory for relative output paths
	ForceUnit  string    // Used when the input names none
	LengthUnit string    // Used when the input names none
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Tolerance:  1e-6,
		LogLevel:   log.InfoLevel,
		OutputDir:  ".",
		ForceUnit:  "kN",
		LengthUnit: "m",
	}
}

// Load reads envFile into the process environment (variables already set
// win) and then builds a Config from it. An empty envFile means
// DefaultEnvFile, which may be absent. A named file must exist.
func Load(envFile string) (Config, error) {
	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvTolerance); ok {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil || tol <= 0 {
			return Config{}, fmt.Errorf("%s: invalid tolerance %q", EnvTolerance, v)
		}
		cfg.Tolerance = tol
	}

	if v, ok := lookup(EnvLogLevel); ok {
		level, err := log.ParseLevel(strings.ToLower(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v, ok := lookup(EnvOutputDir); ok {
		cfg.OutputDir = v
	}
	if v, ok := lookup(EnvForceUnit); ok {
		cfg.ForceUnit = v
	}
	if v, ok := lookup(EnvLengthUnit); ok {
		cfg.LengthUnit = v
	}
	return cfg, nil
}

// lookup treats a blank variable as unset
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
