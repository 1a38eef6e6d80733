package timeline

import "time"

// DragMode distinguishes grabbing a phase body from grabbing a handle.
type DragMode int

const (
	DragMove DragMode = iota
	DragResizeStart
	DragResizeEnd
)

// TrackGeometry maps horizontal cells to time: the visible bounds are
// stretched across Width cells.
type TrackGeometry struct {
	Width  int
	Bounds Window
}

// DeltaTime converts a horizontal movement in cells to a time delta.
func (g TrackGeometry) DeltaTime(cells int) time.Duration {
	if g.Width <= 0 {
		return 0
	}
	total := g.Bounds.Duration()
	return time.Duration(float64(cells) / float64(g.Width) * float64(total))
}

// TimeAt returns the instant under cell x (0-based, track-local).
func (g TrackGeometry) TimeAt(x int) time.Time {
	return g.Bounds.Start.Add(g.DeltaTime(x))
}

// CellAt returns the track cell covering instant t, clamped to the track.
func (g TrackGeometry) CellAt(t time.Time) int {
	total := g.Bounds.Duration()
	if g.Width <= 0 || total <= 0 {
		return 0
	}
	frac := float64(t.Sub(g.Bounds.Start)) / float64(total)
	cell := int(frac * float64(g.Width))
	if cell < 0 {
		return 0
	}
	if cell >= g.Width {
		return g.Width - 1
	}
	return cell
}

// DragSession is one interactive move/resize gesture on a phase window.
// Start it on pointer-down, feed it pointer positions with Move, and end
// it with either Release (emits the final window) or Cancel. Intermediate
// candidates are visual only; nothing is committed until Release, and the
// caller routes the released window into a draft set, not the store.
type DragSession struct {
	phaseID   string
	mode      DragMode
	origin    Window
	originX   int
	geom      TrackGeometry
	zoom      Zoom
	candidate Window
}

// StartDrag captures the gesture origin. The window is the phase's
// effective window at pointer-down; originX is the pointer's track cell.
func StartDrag(phaseID string, mode DragMode, window Window, originX int, geom TrackGeometry, zoom Zoom) *DragSession {
	return &DragSession{
		phaseID:   phaseID,
		mode:      mode,
		origin:    window,
		originX:   originX,
		geom:      geom,
		zoom:      zoom,
		candidate: window,
	}
}

func (s *DragSession) PhaseID() string  { return s.phaseID }
func (s *DragSession) Mode() DragMode   { return s.mode }
func (s *DragSession) Candidate() Window { return s.candidate }

// Move recomputes the candidate window from the pointer position. Always
// derived from the origin capture, so a gesture never accumulates
// rounding error across motion events.
func (s *DragSession) Move(x int) Window {
	delta := s.geom.DeltaTime(x - s.originX)
	grid := s.zoom.Grid()
	minDur := s.zoom.MinDuration()
	lo, hi := s.geom.Bounds.Start, s.geom.Bounds.End

	switch s.mode {
	case DragResizeStart:
		start := Clamp(Snap(s.origin.Start.Add(delta), grid), lo, hi)
		if floor := s.origin.End.Add(-minDur); start.After(floor) {
			start = floor
		}
		s.candidate = Window{Start: start, End: s.origin.End}

	case DragResizeEnd:
		end := Clamp(Snap(s.origin.End.Add(delta), grid), lo, hi)
		if ceil := s.origin.Start.Add(minDur); end.Before(ceil) {
			end = ceil
		}
		s.candidate = Window{Start: s.origin.Start, End: end}

	default: // DragMove keeps the duration and shifts both endpoints.
		dur := s.origin.Duration()
		start := Snap(s.origin.Start.Add(delta), grid)
		if start.Before(lo) {
			start = lo
		}
		if end := start.Add(dur); end.After(hi) {
			start = hi.Add(-dur)
			if start.Before(lo) {
				start = lo
			}
		}
		s.candidate = Window{Start: start, End: start.Add(dur)}
	}
	return s.candidate
}

// Release ends the gesture, returning the phase id and the single final
// window to record as a draft.
func (s *DragSession) Release() (string, Window) {
	return s.phaseID, s.candidate
}

// Cancel ends the gesture without emitting a draft, returning the
// untouched origin window so the caller can restore its rendering.
func (s *DragSession) Cancel() Window {
	s.candidate = s.origin
	return s.origin
}
