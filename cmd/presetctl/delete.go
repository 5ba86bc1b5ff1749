package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// deleteCmd removes one preset by id.
func deleteCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			slog.Info("preset deleted", "id", id, "file", cfg.PresetPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "id of the preset to delete")
	cmd.MarkFlagRequired("id")
	return cmd
}
