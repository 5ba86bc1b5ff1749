package preset

// Diff describes what changed between two preset collections.
type Diff struct {
	// Added holds records present only in the new collection.
	Added []Preset

	// Removed holds records present only in the old collection.
	Removed []Preset

	// Changed holds records present in both whose content differs.
	Changed []Change
}

// Change pairs the old and new versions of one changed record.
type Change struct {
	Old Preset
	New Preset
}

// Empty reports whether the diff contains no changes.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// DiffPresets compares two collections keyed by id and returns what changed.
// Added and Changed follow the new collection's order, Removed follows the
// old collection's order, so output is stable for identical inputs.
func DiffPresets(old, new []Preset) Diff {
	d := Diff{}

	oldByID := make(map[int]Preset, len(old))
	for _, p := range old {
		oldByID[p.ID] = p
	}
	newByID := make(map[int]Preset, len(new))
	for _, p := range new {
		newByID[p.ID] = p
	}

	for _, p := range old {
		if _, exists := newByID[p.ID]; !exists {
			d.Removed = append(d.Removed, p)
		}
	}
	for _, p := range new {
		prev, exists := oldByID[p.ID]
		switch {
		case !exists:
			d.Added = append(d.Added, p)
		case prev != p:
			d.Changed = append(d.Changed, Change{Old: prev, New: p})
		}
	}

	return d
}
