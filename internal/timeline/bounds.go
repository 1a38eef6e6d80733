package timeline

// Bounds computes the visible timeline range: the envelope of the event's
// nominal window and every phase window. Logistics phases routinely start
// before and end after the event itself, so the track must stretch to hold
// them while the nominal window stays marked as the agenda band.
//
// Pure projection: recompute whenever the phase set changes, never cache.
// With zero phases the result equals the nominal event window exactly.
func Bounds(event Window, phases []Window) Window {
	out := event
	for _, p := range phases {
		if p.Start.Before(out.Start) {
			out.Start = p.Start
		}
		if p.End.After(out.End) {
			out.End = p.End
		}
	}
	return out
}
