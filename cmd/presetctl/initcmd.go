package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kanade-engine/presetstore/internal/preset"
)

// initCmd creates a fresh, empty preset file. It refuses to overwrite an
// existing one.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty preset file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := preset.InitFile(cfg.PresetPath); err != nil {
				return err
			}
			slog.Info("preset file created", "path", cfg.PresetPath)
			return nil
		},
	}
}
