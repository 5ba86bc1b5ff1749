package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/common/model"

	"github.com/kanade-engine/presetstore/internal/config"
)

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()
	yaml := `
preset_path: /var/lib/kanade/presets.yaml
log_level: debug
watch:
  interval: 500ms
telemetry:
  metrics: true
  trace: true
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PresetPath != "/var/lib/kanade/presets.yaml" {
		t.Errorf("preset_path: got %q", cfg.PresetPath)
	}
	if cfg.LogLevel != config.LogDebug {
		t.Errorf("log_level: got %q, want %q", cfg.LogLevel, config.LogDebug)
	}
	if got := time.Duration(cfg.Watch.Interval); got != 500*time.Millisecond {
		t.Errorf("watch.interval: got %s, want 500ms", got)
	}
	if !cfg.Telemetry.Metrics || !cfg.Telemetry.Trace {
		t.Error("telemetry flags should both be true")
	}
}

func TestLoadFromReader_AbsentKeysKeepDefaults(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: warn
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != config.LogWarn {
		t.Errorf("log_level: got %q, want %q", cfg.LogLevel, config.LogWarn)
	}
	if cfg.PresetPath != "presets.yaml" {
		t.Errorf("preset_path should keep its default, got %q", cfg.PresetPath)
	}
	if got := time.Duration(cfg.Watch.Interval); got != 2*time.Second {
		t.Errorf("watch.interval should keep its default, got %s", got)
	}
}

func TestLoadFromReader_UnknownKey(t *testing.T) {
	t.Parallel()
	yaml := `
preset_path: presets.yaml
presett_path: typo.yaml
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestLoadFromReader_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "invalid log level",
			input:   "log_level: loud\n",
			wantMsg: "log_level",
		},
		{
			name:    "empty preset path",
			input:   "preset_path: \"\"\n",
			wantMsg: "preset_path",
		},
		{
			// model.Duration rejects negative values at parse time.
			name:    "negative watch interval",
			input:   "watch:\n  interval: -3s\n",
			wantMsg: "decode yaml",
		},
		{
			name:    "unparseable interval",
			input:   "watch:\n  interval: soon\n",
			wantMsg: "decode yaml",
		},
		{
			name:    "malformed yaml",
			input:   ":::not valid yaml:::",
			wantMsg: "decode yaml",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadFromReader(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error should mention %q, got: %v", tc.wantMsg, err)
			}
		})
	}
}

func TestValidate_NegativeInterval(t *testing.T) {
	t.Parallel()
	// Programmatic construction can produce a negative interval even
	// though the YAML parser rejects one.
	cfg := config.DefaultConfig()
	cfg.Watch.Interval = model.Duration(-time.Second)
	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("expected error for negative interval, got nil")
	}
	if !strings.Contains(err.Error(), "watch.interval") {
		t.Errorf("error should mention watch.interval, got: %v", err)
	}
}

func TestLoadFromReader_MultipleErrors(t *testing.T) {
	t.Parallel()
	yaml := `
preset_path: ""
log_level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected errors, got nil")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "preset_path") {
		t.Errorf("error should mention preset_path, got: %v", err)
	}
	if !strings.Contains(errStr, "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "presetctl.yaml")
	content := "preset_path: store.yaml\nlog_level: error\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PresetPath != "store.yaml" {
		t.Errorf("preset_path: got %q, want %q", cfg.PresetPath, "store.yaml")
	}
	if cfg.LogLevel != config.LogError {
		t.Errorf("log_level: got %q, want %q", cfg.LogLevel, config.LogError)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got: %v", err)
	}
}
