package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kanade-engine/presetstore/internal/preset"
)

// updateCmd rewrites one preset, changing only the fields whose flags were
// actually set on the command line.
func updateCmd() *cobra.Command {
	var (
		id int
		in preset.Preset
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one preset",
		Long: `Update reads the preset with the given id, applies only the fields whose
flags are set, and writes the result back. Fields without a flag keep their
stored value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			presets, err := store.List(ctx)
			if err != nil {
				return err
			}
			idx := slices.IndexFunc(presets, func(p preset.Preset) bool { return p.ID == id })
			if idx < 0 {
				return fmt.Errorf("preset id %d: %w", id, preset.ErrNotFound)
			}
			p := presets[idx]

			fields := []struct {
				flag  string
				apply func(*preset.Preset)
			}{
				{"name", func(p *preset.Preset) { p.Name = in.Name }},
				{"speaker-uuid", func(p *preset.Preset) { p.SpeakerUUID = in.SpeakerUUID }},
				{"style-id", func(p *preset.Preset) { p.StyleID = in.StyleID }},
				{"speed-scale", func(p *preset.Preset) { p.SpeedScale = in.SpeedScale }},
				{"intonation-scale", func(p *preset.Preset) { p.IntonationScale = in.IntonationScale }},
				{"tempo-dynamics-scale", func(p *preset.Preset) { p.TempoDynamicsScale = in.TempoDynamicsScale }},
				{"pitch-scale", func(p *preset.Preset) { p.PitchScale = in.PitchScale }},
				{"volume-scale", func(p *preset.Preset) { p.VolumeScale = in.VolumeScale }},
				{"pre-phoneme-length", func(p *preset.Preset) { p.PrePhonemeLength = in.PrePhonemeLength }},
				{"post-phoneme-length", func(p *preset.Preset) { p.PostPhonemeLength = in.PostPhonemeLength }},
			}
			for _, f := range fields {
				if cmd.Flags().Changed(f.flag) {
					f.apply(&p)
				}
			}

			if _, err := store.Update(ctx, p); err != nil {
				return err
			}
			fmt.Println(p.ID)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&id, "id", 0, "id of the preset to update")
	fl.StringVar(&in.Name, "name", "", "preset display name")
	fl.StringVar(&in.SpeakerUUID, "speaker-uuid", "", "target voice UUID")
	fl.IntVar(&in.StyleID, "style-id", 0, "style within the voice")
	fl.Float64Var(&in.SpeedScale, "speed-scale", 0, "speaking-rate multiplier")
	fl.Float64Var(&in.IntonationScale, "intonation-scale", 0, "pitch-contour emphasis multiplier")
	fl.Float64Var(&in.TempoDynamicsScale, "tempo-dynamics-scale", 0, "within-utterance tempo variation multiplier")
	fl.Float64Var(&in.PitchScale, "pitch-scale", 0, "base pitch shift")
	fl.Float64Var(&in.VolumeScale, "volume-scale", 0, "output gain multiplier")
	fl.Float64Var(&in.PrePhonemeLength, "pre-phoneme-length", 0, "leading silence in seconds")
	fl.Float64Var(&in.PostPhonemeLength, "post-phoneme-length", 0, "trailing silence in seconds")

	cmd.MarkFlagRequired("id")
	return cmd
}
