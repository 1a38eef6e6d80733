package timeline

import "time"

// Zoom selects the grid interval and minimum phase duration for
// interactive edits. Coarser zooms snap harder.
type Zoom string

const (
	ZoomDays    Zoom = "days"
	ZoomHours   Zoom = "hours"
	ZoomMinutes Zoom = "minutes"
)

// zoomOrder is the cycle used by the zoom keys, coarse to fine.
var zoomOrder = []Zoom{ZoomDays, ZoomHours, ZoomMinutes}

// Grid returns the snap interval for the zoom level.
func (z Zoom) Grid() time.Duration {
	switch z {
	case ZoomDays:
		return time.Hour
	case ZoomMinutes:
		return 5 * time.Minute
	default:
		return 15 * time.Minute
	}
}

// MinDuration returns the smallest window a drag may produce at this zoom.
func (z Zoom) MinDuration() time.Duration {
	switch z {
	case ZoomDays:
		return time.Hour
	case ZoomMinutes:
		return 5 * time.Minute
	default:
		return 15 * time.Minute
	}
}

// Valid reports whether z is a known zoom level.
func (z Zoom) Valid() bool {
	for _, known := range zoomOrder {
		if z == known {
			return true
		}
	}
	return false
}

// In returns the next finer zoom level, saturating at minutes.
func (z Zoom) In() Zoom {
	for i, known := range zoomOrder {
		if z == known && i < len(zoomOrder)-1 {
			return zoomOrder[i+1]
		}
	}
	return z
}

// Out returns the next coarser zoom level, saturating at days.
func (z Zoom) Out() Zoom {
	for i, known := range zoomOrder {
		if z == known && i > 0 {
			return zoomOrder[i-1]
		}
	}
	return z
}
