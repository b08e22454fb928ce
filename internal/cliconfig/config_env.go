package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (ROSIM_*).
// Env values override file config but are overridden by flags (checked via
// the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("specs", os.Getenv("ROSIM_SPECS_PATH"), &cfg.SpecsPath)
	s.setString("history-dir", os.Getenv("ROSIM_HISTORY_DIR"), &cfg.HistoryDir)
	s.setString("history-format", os.Getenv("ROSIM_HISTORY_FORMAT"), &cfg.HistoryFormat)
	s.setString("listen", os.Getenv("ROSIM_LISTEN"), &cfg.Listen)
	s.setString("log-level", os.Getenv("ROSIM_LOG_LEVEL"), &cfg.LogLevel)
	s.setBoolFromString("watch", os.Getenv("ROSIM_WATCH"), &cfg.Watch)
}
