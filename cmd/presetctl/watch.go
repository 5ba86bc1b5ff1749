package main

import (
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kanade-engine/presetstore/internal/preset"
)

// watchCmd runs the file watcher and logs every change to the preset file
// until interrupted.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the preset file and log changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := preset.NewWatcher(cfg.PresetPath, logDiff,
				preset.WithInterval(time.Duration(cfg.Watch.Interval)))
			if err != nil {
				return err
			}
			defer w.Stop()

			slog.Info("watching preset file",
				"path", cfg.PresetPath,
				"interval", cfg.Watch.Interval.String(),
				"presets", len(w.Current()),
			)
			<-ctx.Done()
			slog.Info("watch stopped")
			return nil
		},
	}
}

// logDiff reports what changed between two collections, one line per record.
func logDiff(old, new []preset.Preset) {
	d := preset.DiffPresets(old, new)
	for _, p := range d.Added {
		slog.Info("preset added", "id", p.ID, "name", p.Name)
	}
	for _, p := range d.Removed {
		slog.Info("preset removed", "id", p.ID, "name", p.Name)
	}
	for _, c := range d.Changed {
		slog.Info("preset changed", "id", c.New.ID, "name", c.New.Name, "was", c.Old.Name)
	}
}
