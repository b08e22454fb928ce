package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return p
}

func TestLoadFileConfig(t *testing.T) {
	p := writeConfigFile(t, `
specs_path = "/etc/rosim/membranes.toml"
history_dir = "/var/lib/rosim"
history_format = "sqlite"
listen = ":9090"
log_level = "debug"
watch = true
`)

	fc, err := LoadFileConfig(p)
	if err != nil {
		t.Fatalf("LoadFileConfig() error: %v", err)
	}

	if fc.SpecsPath != "/etc/rosim/membranes.toml" {
		t.Fatalf("specs_path = %q", fc.SpecsPath)
	}
	if fc.HistoryDir != "/var/lib/rosim" {
		t.Fatalf("history_dir = %q", fc.HistoryDir)
	}
	if fc.HistoryFormat != "sqlite" {
		t.Fatalf("history_format = %q", fc.HistoryFormat)
	}
	if fc.Listen != ":9090" {
		t.Fatalf("listen = %q", fc.Listen)
	}
	if fc.LogLevel != "debug" {
		t.Fatalf("log_level = %q", fc.LogLevel)
	}
	if fc.Watch == nil || !*fc.Watch {
		t.Fatal("watch not parsed as true")
	}
}

func TestLoadFileConfigPartial(t *testing.T) {
	p := writeConfigFile(t, `history_format = "json"`)

	fc, err := LoadFileConfig(p)
	if err != nil {
		t.Fatalf("LoadFileConfig() error: %v", err)
	}
	if fc.HistoryFormat != "json" {
		t.Fatalf("history_format = %q, want json", fc.HistoryFormat)
	}
	if fc.SpecsPath != "" || fc.Watch != nil {
		t.Fatalf("absent keys were filled: %+v", fc)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("LoadFileConfig() on missing file succeeded")
	}
}

func TestLoadFileConfigUnparsable(t *testing.T) {
	p := writeConfigFile(t, `specs_path = [broken`)

	if _, err := LoadFileConfig(p); err == nil {
		t.Fatal("LoadFileConfig() on malformed TOML succeeded")
	}
}

func TestApplyFileConfigPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	defSpecs := cfg.SpecsPath

	watch := true
	fc := FileConfig{
		HistoryFormat: "json",
		Watch:         &watch,
	}
	ApplyFileConfig(&cfg, fc, map[string]bool{})

	if cfg.HistoryFormat != "json" {
		t.Fatalf("history format = %q, want json", cfg.HistoryFormat)
	}
	if !cfg.Watch {
		t.Fatal("watch not applied from file")
	}
	if cfg.SpecsPath != defSpecs {
		t.Fatalf("specs path changed by absent key: %q", cfg.SpecsPath)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("ROSIM_HISTORY_FORMAT", "sqlite")
	t.Setenv("ROSIM_LISTEN", ":7070")
	t.Setenv("ROSIM_WATCH", "1")

	cfg := DefaultConfig()
	ApplyEnvConfig(&cfg, map[string]bool{})

	if cfg.HistoryFormat != "sqlite" {
		t.Fatalf("history format = %q, want sqlite", cfg.HistoryFormat)
	}
	if cfg.Listen != ":7070" {
		t.Fatalf("listen = %q, want :7070", cfg.Listen)
	}
	if !cfg.Watch {
		t.Fatal("watch not applied from env")
	}
}

func TestApplyEnvConfigFlagWins(t *testing.T) {
	t.Setenv("ROSIM_HISTORY_FORMAT", "sqlite")

	cfg := DefaultConfig()
	cfg.HistoryFormat = "json"
	ApplyEnvConfig(&cfg, map[string]bool{"history-format": true})

	if cfg.HistoryFormat != "json" {
		t.Fatalf("history format = %q, env overrode explicit flag", cfg.HistoryFormat)
	}
}
