// Package cliconfig resolves the rosim CLI configuration from defaults, a
// TOML config file, ROSIM_* environment variables and command-line flags,
// in ascending precedence.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osmoflow/rosim/internal/domain"
)

// Valid history formats, matching the backends in internal/adapters/history.
var validHistoryFormats = map[string]bool{
	"csv":    true,
	"json":   true,
	"sqlite": true,
}

// Config holds CLI configuration for rosim.
type Config struct {
	// SpecsPath is the membrane catalog TOML file.
	SpecsPath string

	// HistoryDir is the directory holding the calculation history.
	HistoryDir string

	// HistoryFormat selects the history backend: csv, json or sqlite.
	HistoryFormat string

	// Listen is the HTTP listen address for serve mode.
	Listen string

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string

	// Watch enables catalog hot-reload in serve mode.
	Watch bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	home := configHome()
	return Config{
		SpecsPath:     filepath.Join(home, "membranes.toml"),
		HistoryDir:    home,
		HistoryFormat: "csv",
		Listen:        ":8080",
		LogLevel:      "info",
	}
}

// Validate checks the configuration and fills derived defaults.
func (c *Config) Validate() error {
	if c.SpecsPath == "" {
		return fmt.Errorf("%w: specs path is required", domain.ErrInvalidConfig)
	}
	if c.HistoryDir == "" {
		c.HistoryDir = filepath.Dir(c.SpecsPath)
	}
	if !validHistoryFormats[c.HistoryFormat] {
		return fmt.Errorf("%w: history format must be csv, json or sqlite, got %q",
			domain.ErrInvalidConfig, c.HistoryFormat)
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	return nil
}

// configHome returns ~/.rosim, or the working directory if the user home is
// not accessible.
func configHome() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".rosim")
	}
	return "."
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
