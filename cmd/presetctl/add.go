package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanade-engine/presetstore/internal/preset"
)

// addCmd appends a new preset and prints the id it was assigned.
func addCmd() *cobra.Command {
	// Flag defaults are the neutral synthesis parameters: unmodified speed,
	// pitch and volume, 100ms of silence on both ends.
	p := preset.Preset{
		ID:                 -1,
		SpeedScale:         1.0,
		IntonationScale:    1.0,
		TempoDynamicsScale: 1.0,
		PitchScale:         0.0,
		VolumeScale:        1.0,
		PrePhonemeLength:   0.1,
		PostPhonemeLength:  0.1,
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a preset",
		Long: `Add appends a preset to the store and prints the id it received.
With --id -1 (the default) the next free id is assigned. A requested id that
is already taken is silently replaced by a fresh one; trust the printed id,
not the requested one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := store.Add(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&p.ID, "id", -1, "preset id; -1 assigns the next free id")
	fl.StringVar(&p.Name, "name", "", "preset display name")
	fl.StringVar(&p.SpeakerUUID, "speaker-uuid", "", "target voice UUID")
	fl.IntVar(&p.StyleID, "style-id", 0, "style within the voice")
	fl.Float64Var(&p.SpeedScale, "speed-scale", p.SpeedScale, "speaking-rate multiplier")
	fl.Float64Var(&p.IntonationScale, "intonation-scale", p.IntonationScale, "pitch-contour emphasis multiplier")
	fl.Float64Var(&p.TempoDynamicsScale, "tempo-dynamics-scale", p.TempoDynamicsScale, "within-utterance tempo variation multiplier")
	fl.Float64Var(&p.PitchScale, "pitch-scale", p.PitchScale, "base pitch shift")
	fl.Float64Var(&p.VolumeScale, "volume-scale", p.VolumeScale, "output gain multiplier")
	fl.Float64Var(&p.PrePhonemeLength, "pre-phoneme-length", p.PrePhonemeLength, "leading silence in seconds")
	fl.Float64Var(&p.PostPhonemeLength, "post-phoneme-length", p.PostPhonemeLength, "trailing silence in seconds")

	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("speaker-uuid")
	return cmd
}
