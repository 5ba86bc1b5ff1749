// Package preset implements the persistent parameter-preset store for the
// Kanade synthesis engine.
//
// A preset bundles one voice (speaker + style) with the numeric synthesis
// parameters applied when audio is generated from it. All presets live in a
// single YAML file that operators may edit by hand while the engine runs.
// [Store] keeps an in-memory cache aligned with that file: every public
// operation revalidates the file first (cheap modification-time check) and
// every mutation writes the whole collection back, rolling the cache back if
// the write fails.
//
// The file is the source of truth. The cache is an optimisation, never an
// authority.
package preset

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Recommended parameter ranges. Values outside these bounds are rejected by
// [Preset.Validate] — both for caller-supplied records and for records read
// from the preset file.
const (
	// MinSpeedScale and MaxSpeedScale bound the speaking-rate multiplier.
	MinSpeedScale = 0.5
	MaxSpeedScale = 2.0

	// MinIntonationScale and MaxIntonationScale bound the pitch-contour
	// emphasis multiplier.
	MinIntonationScale = 0.0
	MaxIntonationScale = 2.0

	// MinTempoDynamicsScale and MaxTempoDynamicsScale bound the within-utterance
	// tempo variation multiplier.
	MinTempoDynamicsScale = 0.0
	MaxTempoDynamicsScale = 2.0

	// MinPitchScale and MaxPitchScale bound the base-pitch shift.
	MinPitchScale = -0.15
	MaxPitchScale = 0.15

	// MinVolumeScale and MaxVolumeScale bound the output gain multiplier.
	MinVolumeScale = 0.0
	MaxVolumeScale = 2.0
)

// DefaultTempoDynamicsScale is applied when a preset file predates the
// tempoDynamicsScale field and omits the key entirely.
const DefaultTempoDynamicsScale = 1.0

// Preset is one named parameter bundle.
//
// The YAML/JSON keys mix snake_case and camelCase. That mix is load-bearing:
// it matches the established preset file format shared with other tooling,
// so the tags must never be "cleaned up".
type Preset struct {
	// ID identifies the preset within the store. Unique across the file.
	// A negative ID passed to [Store.Add] means "assign one for me".
	ID int `yaml:"id" json:"id"`

	// Name is the preset's display name. Free-form.
	Name string `yaml:"name" json:"name"`

	// SpeakerUUID identifies the target voice. Opaque to the store.
	SpeakerUUID string `yaml:"speaker_uuid" json:"speaker_uuid"`

	// StyleID identifies a style within the voice. Opaque to the store.
	StyleID int `yaml:"style_id" json:"style_id"`

	// SpeedScale is the speaking-rate multiplier.
	SpeedScale float64 `yaml:"speedScale" json:"speedScale"`

	// IntonationScale is the pitch-contour emphasis multiplier.
	IntonationScale float64 `yaml:"intonationScale" json:"intonationScale"`

	// TempoDynamicsScale is the within-utterance tempo variation multiplier.
	// Older preset files omit it; absent keys decode to
	// [DefaultTempoDynamicsScale].
	TempoDynamicsScale float64 `yaml:"tempoDynamicsScale" json:"tempoDynamicsScale"`

	// PitchScale shifts the base pitch.
	PitchScale float64 `yaml:"pitchScale" json:"pitchScale"`

	// VolumeScale is the output gain multiplier.
	VolumeScale float64 `yaml:"volumeScale" json:"volumeScale"`

	// PrePhonemeLength is the leading silence in seconds.
	PrePhonemeLength float64 `yaml:"prePhonemeLength" json:"prePhonemeLength"`

	// PostPhonemeLength is the trailing silence in seconds.
	PostPhonemeLength float64 `yaml:"postPhonemeLength" json:"postPhonemeLength"`
}

// UnmarshalYAML decodes a preset mapping, applying the back-compat default
// for tempoDynamicsScale when the key is absent. Unknown keys are tolerated
// on read; they are dropped on the next whole-file write.
func (p *Preset) UnmarshalYAML(node *yaml.Node) error {
	type rawPreset Preset // drops the method set to avoid recursing
	raw := rawPreset{TempoDynamicsScale: DefaultTempoDynamicsScale}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = Preset(raw)
	return nil
}

// Validate checks every numeric parameter against its recommended range and
// returns all violations joined, so a caller can report every bad field at
// once rather than fixing them one by one.
//
// ID semantics (uniqueness, auto-assignment) are the store's concern and are
// deliberately not checked here: a negative ID is a legal input to
// [Store.Add].
//
// A SpeakerUUID that does not parse as a UUID is logged as a warning but is
// not an error — hand-maintained files in the wild carry arbitrary voice
// identifiers here and downstream engines resolve them, not the store.
func (p Preset) Validate() error {
	var errs []error

	if p.SpeedScale < MinSpeedScale || p.SpeedScale > MaxSpeedScale {
		errs = append(errs, fmt.Errorf("speedScale %g is out of range [%g, %g]", p.SpeedScale, MinSpeedScale, MaxSpeedScale))
	}
	if p.IntonationScale < MinIntonationScale || p.IntonationScale > MaxIntonationScale {
		errs = append(errs, fmt.Errorf("intonationScale %g is out of range [%g, %g]", p.IntonationScale, MinIntonationScale, MaxIntonationScale))
	}
	if p.TempoDynamicsScale < MinTempoDynamicsScale || p.TempoDynamicsScale > MaxTempoDynamicsScale {
		errs = append(errs, fmt.Errorf("tempoDynamicsScale %g is out of range [%g, %g]", p.TempoDynamicsScale, MinTempoDynamicsScale, MaxTempoDynamicsScale))
	}
	if p.PitchScale < MinPitchScale || p.PitchScale > MaxPitchScale {
		errs = append(errs, fmt.Errorf("pitchScale %g is out of range [%g, %g]", p.PitchScale, MinPitchScale, MaxPitchScale))
	}
	if p.VolumeScale < MinVolumeScale || p.VolumeScale > MaxVolumeScale {
		errs = append(errs, fmt.Errorf("volumeScale %g is out of range [%g, %g]", p.VolumeScale, MinVolumeScale, MaxVolumeScale))
	}
	if p.PrePhonemeLength < 0 {
		errs = append(errs, fmt.Errorf("prePhonemeLength %g must not be negative", p.PrePhonemeLength))
	}
	if p.PostPhonemeLength < 0 {
		errs = append(errs, fmt.Errorf("postPhonemeLength %g must not be negative", p.PostPhonemeLength))
	}

	if p.SpeakerUUID != "" {
		if _, err := uuid.Parse(p.SpeakerUUID); err != nil {
			slog.Warn("preset speaker_uuid is not a well-formed UUID",
				"preset_id", p.ID,
				"name", p.Name,
				"speaker_uuid", p.SpeakerUUID,
			)
		}
	}

	return errors.Join(errs...)
}
