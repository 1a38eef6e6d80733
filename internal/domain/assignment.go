package domain

import (
	"time"

	"github.com/alexanderramin/stagehand/internal/timeline"
)

// VehicleAssignment reserves one vehicle for a contiguous span of an
// event's logistics phases. One row means "vehicle held from the start
// of loading to the end of unloading", a spanning assignment rather than one
// row per phase. Keyed by (PhaseID, VehicleID) where PhaseID is the
// loading phase; the orchestrator upserts against that key.
//
// The referenced phase may have been deleted out from under the row;
// consumers skip such orphans instead of failing.
type VehicleAssignment struct {
	ID            string
	PhaseID       string
	EventID       string
	VehicleID     string
	DriverID      *string
	AssignedStart time.Time
	AssignedEnd   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Window returns the reserved span.
func (a *VehicleAssignment) Window() timeline.Window {
	return timeline.Window{Start: a.AssignedStart, End: a.AssignedEnd}
}
