package timeline

import (
	"fmt"
	"time"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a Window from two instants.
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// Duration returns End - Start. Negative if the window is inverted.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsZero reports whether both endpoints are the zero instant.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Overlaps reports whether two half-open windows intersect.
// Touching endpoints (a.End == b.Start) are adjacency, not overlap,
// so zero-duration windows never overlap anything.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Intersect returns the overlapping sub-window of a and b.
// ok is false when the windows do not overlap.
func Intersect(a, b Window) (Window, bool) {
	if !Overlaps(a, b) {
		return Window{}, false
	}
	out := a
	if b.Start.After(out.Start) {
		out.Start = b.Start
	}
	if b.End.Before(out.End) {
		out.End = b.End
	}
	return out, true
}

// Snap rounds t to the nearest multiple of interval, half rounding up.
// Intervals that divide an hour evenly (5m, 15m, 60m) stay aligned to
// wall-clock boundaries in UTC.
func Snap(t time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		return t
	}
	return t.Round(interval)
}

// Clamp constrains t to [lo, hi].
func Clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

// DurationLabel formats a duration for timeline bars:
// "2d 4h" at a day or more, "3h 15m" at an hour or more, else "45m".
// Zero and negative durations format as "0m".
func DurationLabel(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	total := int(d.Minutes())
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	mins := total % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
