package cliconfig

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/osmoflow/rosim/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SpecsPath == "" {
		t.Fatal("default specs path is empty")
	}
	if cfg.HistoryFormat != "csv" {
		t.Fatalf("default history format = %q, want csv", cfg.HistoryFormat)
	}
	if cfg.Listen != ":8080" {
		t.Fatalf("default listen = %q, want :8080", cfg.Listen)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default log level = %q, want info", cfg.LogLevel)
	}
	if cfg.Watch {
		t.Fatal("watch enabled by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"empty specs path", func(c *Config) { c.SpecsPath = "" }, true},
		{"json format", func(c *Config) { c.HistoryFormat = "json" }, false},
		{"sqlite format", func(c *Config) { c.HistoryFormat = "sqlite" }, false},
		{"unknown format", func(c *Config) { c.HistoryFormat = "xml" }, true},
		{"empty format", func(c *Config) { c.HistoryFormat = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidConfig) {
					t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
		})
	}
}

func TestValidateDerivesHistoryDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpecsPath = filepath.Join("/opt", "rosim", "membranes.toml")
	cfg.HistoryDir = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if want := filepath.Join("/opt", "rosim"); cfg.HistoryDir != want {
		t.Fatalf("derived history dir = %q, want %q", cfg.HistoryDir, want)
	}
}

func TestConfigSetterRespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpecsPath = "/from/flag.toml"

	changed := map[string]bool{"specs": true}
	fc := FileConfig{
		SpecsPath:  "/from/file.toml",
		HistoryDir: "/from/file",
	}
	ApplyFileConfig(&cfg, fc, changed)

	if cfg.SpecsPath != "/from/flag.toml" {
		t.Fatalf("specs path = %q, flag value was overridden by file", cfg.SpecsPath)
	}
	if cfg.HistoryDir != "/from/file" {
		t.Fatalf("history dir = %q, want file value", cfg.HistoryDir)
	}
}
