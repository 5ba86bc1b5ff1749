package preset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kanade-engine/presetstore/internal/preset"
)

const twoPresetYAML = `
- id: 0
  name: ノーマル
  speaker_uuid: e5020595-5c5d-4e87-b849-270a518d0dcf
  style_id: 0
  speedScale: 1.0
  intonationScale: 1.0
  tempoDynamicsScale: 1.0
  pitchScale: 0.0
  volumeScale: 1.0
  prePhonemeLength: 0.1
  postPhonemeLength: 0.1
- id: 1
  name: ささやき
  speaker_uuid: e5020595-5c5d-4e87-b849-270a518d0dcf
  style_id: 3
  speedScale: 0.9
  intonationScale: 1.2
  tempoDynamicsScale: 0.8
  pitchScale: 0.05
  volumeScale: 0.6
  prePhonemeLength: 0.2
  postPhonemeLength: 0.3
`

func TestLoadFromReader_Valid(t *testing.T) {
	t.Parallel()

	presets, err := preset.LoadFromReader(strings.NewReader(twoPresetYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(presets))
	}
	if presets[0].Name != "ノーマル" || presets[1].Name != "ささやき" {
		t.Errorf("names out of order: %q, %q", presets[0].Name, presets[1].Name)
	}
	if presets[1].StyleID != 3 {
		t.Errorf("style_id: got %d, want 3", presets[1].StyleID)
	}
	if presets[1].VolumeScale != 0.6 {
		t.Errorf("volumeScale: got %g, want 0.6", presets[1].VolumeScale)
	}
}

func TestLoadFromReader_EmptySequenceIsValid(t *testing.T) {
	t.Parallel()

	presets, err := preset.LoadFromReader(strings.NewReader("[]\n"))
	if err != nil {
		t.Fatalf("explicit empty sequence must be a valid empty store, got: %v", err)
	}
	if len(presets) != 0 {
		t.Fatalf("expected 0 presets, got %d", len(presets))
	}
}

func TestLoadFromReader_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			// An empty document is indistinguishable from a clobbered file.
			name:    "empty document",
			input:   "",
			wantMsg: "empty or null",
		},
		{
			name:    "null document",
			input:   "null\n",
			wantMsg: "empty or null",
		},
		{
			name:    "whitespace only",
			input:   "\n\n",
			wantMsg: "empty or null",
		},
		{
			name:    "malformed yaml",
			input:   "- id: 0\n  name: [unclosed\n",
			wantMsg: "decode yaml",
		},
		{
			name:    "mapping instead of sequence",
			input:   "id: 0\nname: not-a-list\n",
			wantMsg: "decode yaml",
		},
		{
			name:    "type mismatch",
			input:   "- id: zero\n  name: x\n  speedScale: 1.0\n",
			wantMsg: "decode yaml",
		},
		{
			name: "duplicate ids",
			input: `
- id: 2
  name: first
  speedScale: 1.0
  intonationScale: 1.0
  volumeScale: 1.0
- id: 2
  name: second
  speedScale: 1.0
  intonationScale: 1.0
  volumeScale: 1.0
`,
			wantMsg: "duplicate",
		},
		{
			name: "negative id on disk",
			input: `
- id: -4
  name: bad
  speedScale: 1.0
  intonationScale: 1.0
  volumeScale: 1.0
`,
			wantMsg: "must not be negative",
		},
		{
			name: "field out of range",
			input: `
- id: 0
  name: loud
  speedScale: 1.0
  intonationScale: 1.0
  volumeScale: 11.0
`,
			wantMsg: "volumeScale",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := preset.LoadFromReader(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error should mention %q, got: %v", tc.wantMsg, err)
			}
		})
	}
}

func TestLoadFromReader_ErrorNamesRecordIndex(t *testing.T) {
	t.Parallel()

	input := `
- id: 0
  name: fine
  speedScale: 1.0
  intonationScale: 1.0
  volumeScale: 1.0
- id: 1
  name: broken
  speedScale: 9.0
  intonationScale: 1.0
  volumeScale: 1.0
`
	_, err := preset.LoadFromReader(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "presets[1]") {
		t.Errorf("error should locate the offending record, got: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(twoPresetYAML), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	presets, err := preset.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(presets))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := preset.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
