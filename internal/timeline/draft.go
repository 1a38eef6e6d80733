package timeline

// DraftSet buffers uncommitted window edits per phase so several gestures
// can be reviewed and then saved or discarded together. Session-scoped
// and never persisted: losing the session loses the drafts.
type DraftSet struct {
	entries map[string]Window
}

// NewDraftSet returns an empty draft buffer.
func NewDraftSet() *DraftSet {
	return &DraftSet{entries: make(map[string]Window)}
}

// Record stores (or replaces) the candidate window for a phase.
func (d *DraftSet) Record(phaseID string, w Window) {
	d.entries[phaseID] = w
}

// Effective returns the draft window for the phase if one exists,
// otherwise the stored window. Every consumer (bounds, conflicts,
// renderer) reads windows through this projection so in-progress edits
// are visible before save.
func (d *DraftSet) Effective(phaseID string, stored Window) Window {
	if w, ok := d.entries[phaseID]; ok {
		return w
	}
	return stored
}

// Window returns the draft for a phase, if any.
func (d *DraftSet) Window(phaseID string) (Window, bool) {
	w, ok := d.entries[phaseID]
	return w, ok
}

// Dirty reports whether any unsaved drafts exist.
func (d *DraftSet) Dirty() bool {
	return len(d.entries) > 0
}

// Len returns the number of drafted phases.
func (d *DraftSet) Len() int {
	return len(d.entries)
}

// Windows returns a copy of the draft map for committing.
func (d *DraftSet) Windows() map[string]Window {
	out := make(map[string]Window, len(d.entries))
	for id, w := range d.entries {
		out[id] = w
	}
	return out
}

// Discard drops all drafts, reverting effective windows to stored values.
func (d *DraftSet) Discard() {
	d.entries = make(map[string]Window)
}
