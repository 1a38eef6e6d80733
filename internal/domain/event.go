package domain

import (
	"time"

	"github.com/alexanderramin/stagehand/internal/timeline"
)

// Event is a production or installation job with a client-facing agenda
// window. Phases decompose the event over time and may extend well
// outside this window.
type Event struct {
	ID        string
	Name      string
	Venue     string
	StartTime time.Time
	EndTime   time.Time
	Status    EventStatus
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the nominal agenda window.
func (e *Event) Window() timeline.Window {
	return timeline.Window{Start: e.StartTime, End: e.EndTime}
}

// Validate checks the basic ordering invariant.
func (e *Event) Validate() error {
	if e.EndTime.Before(e.StartTime) {
		return timeline.ErrInvalidEventWindow
	}
	return nil
}
