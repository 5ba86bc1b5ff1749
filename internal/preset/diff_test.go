package preset_test

import (
	"testing"

	"github.com/kanade-engine/presetstore/internal/preset"
)

func TestDiffPresets_NoChanges(t *testing.T) {
	t.Parallel()
	presets := []preset.Preset{validPreset(0, "a"), validPreset(1, "b")}

	d := preset.DiffPresets(presets, presets)
	if !d.Empty() {
		t.Errorf("expected empty diff for identical collections, got %+v", d)
	}
}

func TestDiffPresets_BothEmpty(t *testing.T) {
	t.Parallel()
	d := preset.DiffPresets(nil, nil)
	if !d.Empty() {
		t.Errorf("expected empty diff for empty collections, got %+v", d)
	}
}

func TestDiffPresets_Added(t *testing.T) {
	t.Parallel()
	old := []preset.Preset{validPreset(0, "a")}
	new := []preset.Preset{validPreset(0, "a"), validPreset(1, "b")}

	d := preset.DiffPresets(old, new)
	if d.Empty() {
		t.Fatal("expected a non-empty diff")
	}
	if len(d.Added) != 1 || d.Added[0].ID != 1 {
		t.Errorf("Added: got %+v, want just preset 1", d.Added)
	}
	if len(d.Removed) != 0 || len(d.Changed) != 0 {
		t.Errorf("expected only additions, got %+v", d)
	}
}

func TestDiffPresets_Removed(t *testing.T) {
	t.Parallel()
	old := []preset.Preset{validPreset(0, "a"), validPreset(1, "b")}
	new := []preset.Preset{validPreset(0, "a")}

	d := preset.DiffPresets(old, new)
	if len(d.Removed) != 1 || d.Removed[0].ID != 1 {
		t.Errorf("Removed: got %+v, want just preset 1", d.Removed)
	}
	if len(d.Added) != 0 || len(d.Changed) != 0 {
		t.Errorf("expected only removals, got %+v", d)
	}
}

func TestDiffPresets_Changed(t *testing.T) {
	t.Parallel()
	before := validPreset(0, "a")
	after := before
	after.SpeedScale = 1.5

	d := preset.DiffPresets([]preset.Preset{before}, []preset.Preset{after})
	if len(d.Changed) != 1 {
		t.Fatalf("Changed: got %+v, want one change", d.Changed)
	}
	if d.Changed[0].Old != before || d.Changed[0].New != after {
		t.Errorf("change should carry both versions: %+v", d.Changed[0])
	}
}

func TestDiffPresets_MultipleChanges(t *testing.T) {
	t.Parallel()
	renamed := validPreset(0, "a2")
	old := []preset.Preset{validPreset(0, "a"), validPreset(1, "b")}
	new := []preset.Preset{renamed, validPreset(2, "c")}

	// 0: renamed, 1: removed, 2: added.
	d := preset.DiffPresets(old, new)
	if len(d.Changed) != 1 || d.Changed[0].New != renamed {
		t.Errorf("Changed: got %+v", d.Changed)
	}
	if len(d.Removed) != 1 || d.Removed[0].ID != 1 {
		t.Errorf("Removed: got %+v", d.Removed)
	}
	if len(d.Added) != 1 || d.Added[0].ID != 2 {
		t.Errorf("Added: got %+v", d.Added)
	}
}

func TestDiffPresets_OrderFollowsInput(t *testing.T) {
	t.Parallel()
	old := []preset.Preset{validPreset(3, "x"), validPreset(1, "y")}
	new := []preset.Preset{validPreset(7, "p"), validPreset(5, "q")}

	d := preset.DiffPresets(old, new)
	if len(d.Added) != 2 || d.Added[0].ID != 7 || d.Added[1].ID != 5 {
		t.Errorf("Added must follow the new collection's order, got %+v", d.Added)
	}
	if len(d.Removed) != 2 || d.Removed[0].ID != 3 || d.Removed[1].ID != 1 {
		t.Errorf("Removed must follow the old collection's order, got %+v", d.Removed)
	}
}
