package service

import (
	"context"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

type EventService interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}

type PhaseService interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	// CommitWindows persists a draft set atomically: every window or
	// none. On failure the error wraps ErrPersistFailed with the phase
	// id that broke the batch.
	CommitWindows(ctx context.Context, drafts map[string]timeline.Window) error
	Delete(ctx context.Context, id string) error
}

type PhaseTypeService interface {
	Create(ctx context.Context, pt *domain.PhaseType) error
	List(ctx context.Context) ([]*domain.PhaseType, error)
	GetByRole(ctx context.Context, role domain.PhaseRole) (*domain.PhaseType, error)
	// SeedDefaults creates the standard phase types (the four logistics
	// roles plus the event phase) if they do not exist yet.
	SeedDefaults(ctx context.Context) ([]*domain.PhaseType, error)
	Delete(ctx context.Context, id string) error
}

type VehicleService interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentRequest asks for a vehicle to be reserved across the
// logistics phases of an event.
type AssignmentRequest struct {
	EventID   string
	VehicleID string
	DriverID  *string
	Durations timeline.Durations
}

// AssignmentPlan reports what an EnsureVehicleAssignment run produced.
type AssignmentPlan struct {
	Phases     map[domain.PhaseRole]*domain.Phase
	Created    []domain.PhaseRole
	Assignment *domain.VehicleAssignment
}

type AssignmentService interface {
	// EnsureVehicleAssignment idempotently lays out the four logistics
	// phases for the event and upserts one spanning assignment from the
	// start of loading to the end of unloading. Safe to re-run; not
	// safe to run concurrently for the same event, so calls are
	// serialized per event id internally.
	EnsureVehicleAssignment(ctx context.Context, req AssignmentRequest) (*AssignmentPlan, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.VehicleAssignment, error)
	Remove(ctx context.Context, id string) error
}

type AvailabilityService interface {
	// Check returns the vehicle's bookings from other events that
	// intersect the window. Errors wrap ErrAvailabilityCheck and mean
	// "unknown", never "available".
	Check(ctx context.Context, vehicleID string, w timeline.Window, excludeEventID string) ([]*domain.VehicleAssignment, error)
}
