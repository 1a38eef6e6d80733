package timeline

// Interval pairs a stable entity id with its time window.
// The detector works on phases and on resource bookings alike.
type Interval struct {
	ID     string
	Window Window
}

// Overlap describes one conflicting peer of an interval, carrying the
// intersection window so the renderer can hatch the contested span.
type Overlap struct {
	PeerID string
	Window Window
}

// Conflicts returns, for every interval id, whether it overlaps at least
// one peer. Pairwise comparison; n is bounded by the phases of a single
// event, so O(n²) is fine. Self-comparison is excluded and the result is
// symmetric: if A conflicts with B, both ids are flagged.
func Conflicts(intervals []Interval) map[string]bool {
	out := make(map[string]bool, len(intervals))
	for _, iv := range intervals {
		out[iv.ID] = false
	}
	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			if Overlaps(intervals[i].Window, intervals[j].Window) {
				out[intervals[i].ID] = true
				out[intervals[j].ID] = true
			}
		}
	}
	return out
}

// ConflictDetails returns the overlapping peers per interval id, with the
// intersection window of each pair. Ids without conflicts are absent from
// the map.
func ConflictDetails(intervals []Interval) map[string][]Overlap {
	out := make(map[string][]Overlap)
	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			a, b := intervals[i], intervals[j]
			inter, ok := Intersect(a.Window, b.Window)
			if !ok {
				continue
			}
			out[a.ID] = append(out[a.ID], Overlap{PeerID: b.ID, Window: inter})
			out[b.ID] = append(out[b.ID], Overlap{PeerID: a.ID, Window: inter})
		}
	}
	return out
}
