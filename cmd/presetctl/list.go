package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// listCmd prints every preset in the store.
func listCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "yaml" {
				return fmt.Errorf("invalid --output %q (want table or yaml)", output)
			}

			presets, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			if output == "yaml" {
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				if err := enc.Encode(presets); err != nil {
					return fmt.Errorf("encode presets: %w", err)
				}
				return enc.Close()
			}

			if len(presets) == 0 {
				fmt.Println("No presets found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPEAKER\tSTYLE\tSPEED\tPITCH\tINTONATION\tTEMPO\tVOLUME\tPRE\tPOST")
			for _, p := range presets {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n",
					p.ID, p.Name, p.SpeakerUUID, p.StyleID,
					p.SpeedScale, p.PitchScale, p.IntonationScale, p.TempoDynamicsScale,
					p.VolumeScale, p.PrePhonemeLength, p.PostPhonemeLength)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	return cmd
}
