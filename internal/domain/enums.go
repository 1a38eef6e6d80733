package domain

// PhaseRole is the explicit role tag on a phase type. Logistics phases
// are matched by role, never by name, so renaming or localizing a phase
// type cannot break the scheduler.
type PhaseRole string

const (
	RoleLoading    PhaseRole = "loading"
	RoleTravelOut  PhaseRole = "travel_out"
	RoleEvent      PhaseRole = "event"
	RoleTravelBack PhaseRole = "travel_back"
	RoleUnloading  PhaseRole = "unloading"
	RoleGeneric    PhaseRole = "generic"
)

// LogisticsRoles lists the four auxiliary roles surrounding the event
// phase, in layout order.
var LogisticsRoles = []PhaseRole{RoleLoading, RoleTravelOut, RoleTravelBack, RoleUnloading}

// ValidPhaseRoles is the canonical set of accepted role strings.
var ValidPhaseRoles = map[string]bool{
	"loading": true, "travel_out": true, "event": true,
	"travel_back": true, "unloading": true, "generic": true,
}

// IsLogistics reports whether the role is one of the four auxiliary roles.
func (r PhaseRole) IsLogistics() bool {
	for _, role := range LogisticsRoles {
		if r == role {
			return true
		}
	}
	return false
}

type EventStatus string

const (
	EventPlanned   EventStatus = "planned"
	EventConfirmed EventStatus = "confirmed"
	EventDone      EventStatus = "done"
	EventCancelled EventStatus = "cancelled"
)

type VehicleKind string

const (
	VehicleTruck   VehicleKind = "truck"
	VehicleVan     VehicleKind = "van"
	VehicleTrailer VehicleKind = "trailer"
	VehicleCar     VehicleKind = "car"
)

// ValidVehicleKinds is the canonical set of accepted vehicle kind strings.
var ValidVehicleKinds = map[string]bool{
	"truck": true, "van": true, "trailer": true, "car": true,
}
