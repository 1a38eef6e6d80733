package domain

import "time"

// PhaseType is a reusable template for phases: a display name, an
// explicit role tag, and a priority that orders phases of an event.
type PhaseType struct {
	ID               string
	Name             string
	Role             PhaseRole
	SequencePriority int
	Color            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
