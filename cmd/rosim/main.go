package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/osmoflow/rosim/internal/cliconfig"
	"github.com/osmoflow/rosim/internal/registry"
	"github.com/osmoflow/rosim/pkg/log"
)

const helpDescription = `
Simulate reverse-osmosis pressure vessel performance element by element.

Highlights:
  - Log-mean transport model with temperature-corrected permeability.
  - Membrane catalog from a TOML file; configure via file, env, or flags.
  - Every run is appended to a local calculation history (csv, json or sqlite).
`

var exampleUsage = strings.TrimSpace(`
  rosim simulate --product CPA5-LD --feed-flow 30 --feed-tds 2000 --feed-pressure 15.5 --elements 4
  rosim products
  rosim serve --listen :8080 --watch
`)

var (
	cfg     = cliconfig.DefaultConfig()
	cfgPath string
	logger  log.Logger = log.NewNoopLogger()
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// resolveConfig layers file and environment configuration under any flags the
// user set explicitly, then validates the result and builds the logger.
func resolveConfig(cmd *cobra.Command) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cliconfig.ApplyFileConfig(&cfg, fc, changed)
	}

	cliconfig.ApplyEnvConfig(&cfg, changed)

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	zl := zerolog.New(output).Level(level).With().Timestamp().Logger()
	logger = log.NewZerologAdapterWithLogger(zl)
	return nil
}

// loadRegistry loads the membrane catalog configured in cfg.
func loadRegistry() (*registry.Registry, error) {
	reg, err := registry.Load(cfg.SpecsPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load membrane catalog: %w", err)
	}
	return reg, nil
}

func main() {
	// A .env in the working directory supplies ROSIM_* variables, mainly for
	// development setups.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:     "rosim",
		Short:   "Simulate reverse-osmosis pressure vessel performance",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(cmd)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rosim/config.toml)")
	root.PersistentFlags().StringVar(&cfg.SpecsPath, "specs", cfg.SpecsPath, "membrane catalog TOML file")
	root.PersistentFlags().StringVar(&cfg.HistoryDir, "history-dir", cfg.HistoryDir, "directory for the calculation history")
	root.PersistentFlags().StringVar(&cfg.HistoryFormat, "history-format", cfg.HistoryFormat, "history backend: csv, json or sqlite")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	root.AddCommand(newSimulateCmd())
	root.AddCommand(newProductsCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rosim: %v\n", err)
		os.Exit(1)
	}
}
