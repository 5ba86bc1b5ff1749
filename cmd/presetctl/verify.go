package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kanade-engine/presetstore/internal/preset"
)

// verifyCmd parses and validates preset files without touching them. Files
// are checked concurrently; the exit status is non-zero if any file fails.
func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check that preset files parse and validate",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g errgroup.Group
			for _, path := range args {
				g.Go(func() error {
					presets, err := preset.Load(path)
					if err != nil {
						fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
						return fmt.Errorf("%s does not validate", path)
					}
					fmt.Printf("%s: ok (%d presets)\n", path, len(presets))
					return nil
				})
			}
			return g.Wait()
		},
	}
}
