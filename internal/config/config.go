// Package config provides the configuration schema and loader for the
// presetctl command-line tool.
package config

import (
	"time"

	"github.com/prometheus/common/model"
)

// LogLevel controls log verbosity for presetctl.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for presetctl.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader];
// command-line flags override individual values afterwards.
type Config struct {
	// PresetPath is the location of the preset store file.
	PresetPath string `yaml:"preset_path"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// Watch configures the watch subcommand.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry configures metric and trace export.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Interval is the poll interval for detecting preset file changes,
	// in Go duration syntax (e.g. "2s", "500ms").
	Interval model.Duration `yaml:"interval"`
}

// TelemetryConfig selects which telemetry is produced. All output is local
// (text exposition on stderr, stdout span dump); presetctl opens no sockets.
type TelemetryConfig struct {
	// Metrics enables the Prometheus text dump on exit.
	Metrics bool `yaml:"metrics"`

	// Trace enables span export to stdout.
	Trace bool `yaml:"trace"`
}

// DefaultConfig returns the configuration used when no config file is
// present. Loading a file overrides only the keys it sets.
func DefaultConfig() *Config {
	return &Config{
		PresetPath: "presets.yaml",
		LogLevel:   LogInfo,
		Watch: WatchConfig{
			Interval: model.Duration(2 * time.Second),
		},
	}
}
