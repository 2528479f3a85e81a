package pipeline

// DupeTracker counts repeat sightings of canonical identifiers. The counter
// for an id equals the number of times it was observed minus one, so a
// clean stream leaves every counter at zero. Entries are never removed;
// the table is diagnostic only and never alters pipeline output.
type DupeTracker struct {
	ids map[string]int
}

// NewDupeTracker creates an empty tracker.
func NewDupeTracker() *DupeTracker {
	return &DupeTracker{ids: make(map[string]int)}
}

// Observe records one sighting of id.
func (t *DupeTracker) Observe(id string) {
	if _, seen := t.ids[id]; seen {
		t.ids[id]++
	} else {
		t.ids[id] = 0
	}
}

// Distinct returns the number of distinct identifiers observed.
func (t *DupeTracker) Distinct() int {
	return len(t.ids)
}

// Dupes returns the identifiers with a nonzero counter, mapped to their
// duplicate count.
func (t *DupeTracker) Dupes() map[string]int {
	dupes := make(map[string]int)
	for id, n := range t.ids {
		if n != 0 {
			dupes[id] = n
		}
	}
	return dupes
}
