// Command presetctl manages the parameter-preset file of the Kanade
// synthesis engine: list, add, update and delete presets, verify files,
// and watch a live file for edits.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanade-engine/presetstore/internal/config"
	"github.com/kanade-engine/presetstore/internal/preset"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := newRootCmd().Execute()
	flushTelemetry()
	return exitCode(err)
}

// exitCode maps an error to the process exit status: 2 for caller mistakes
// (unknown id, invalid parameters), 1 for store-side failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case preset.IsClientFault(err):
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "presetctl",
		Short: "Manage Kanade synthesis parameter presets",
		Long: `presetctl edits the YAML preset file used by the Kanade synthesis engine.
The file is the source of truth: every command re-reads it before acting, so
presetctl can run next to a live engine without either side going stale.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to the YAML configuration file")
	pf.StringVar(&flagFile, "file", "", "preset file to operate on (overrides config)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	pf.BoolVar(&flagMetrics, "metrics", false, "print collected metrics to stderr on exit")
	pf.BoolVar(&flagTrace, "trace", false, "export operation spans to stderr")

	root.AddCommand(
		listCmd(),
		addCmd(),
		updateCmd(),
		deleteCmd(),
		verifyCmd(),
		watchCmd(),
		initCmd(),
		versionCmd(),
	)
	return root
}

// setup runs before every subcommand: resolve configuration, install the
// logger, bring up telemetry, and open the store. The store does no I/O
// until its first operation, so constructing it here is free.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
	} else {
		cfg = config.DefaultConfig()
	}
	if flagFile != "" {
		cfg.PresetPath = flagFile
	}
	if flagLogLevel != "" {
		lvl := config.LogLevel(flagLogLevel)
		if !lvl.IsValid() {
			return fmt.Errorf("invalid --log-level %q (want debug, info, warn or error)", flagLogLevel)
		}
		cfg.LogLevel = lvl
	}

	slog.SetDefault(newLogger(cfg.LogLevel))

	// Telemetry must be live before the store is constructed: the store
	// binds its instruments to the global meter provider on creation.
	if err := initTelemetry(cmd.Context()); err != nil {
		return err
	}

	store = preset.NewStore(cfg.PresetPath)
	return nil
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("presetctl %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
