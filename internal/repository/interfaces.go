package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type PhaseTypeRepo interface {
	Create(ctx context.Context, pt *domain.PhaseType) error
	GetByID(ctx context.Context, id string) (*domain.PhaseType, error)
	GetByRole(ctx context.Context, role domain.PhaseRole) (*domain.PhaseType, error)
	List(ctx context.Context) ([]*domain.PhaseType, error)
	Update(ctx context.Context, pt *domain.PhaseType) error
	Delete(ctx context.Context, id string) error
}

type VehicleRepo interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	// Upsert inserts the assignment or, when a row for the same
	// (phase_id, vehicle_id) exists, replaces its span and driver.
	Upsert(ctx context.Context, a *domain.VehicleAssignment) error
	GetByID(ctx context.Context, id string) (*domain.VehicleAssignment, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.VehicleAssignment, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.VehicleAssignment, error)
	// ListOverlapping returns assignments of the vehicle from other
	// events whose span intersects w (half-open).
	ListOverlapping(ctx context.Context, vehicleID string, w timeline.Window, excludeEventID string) ([]*domain.VehicleAssignment, error)
	Delete(ctx context.Context, id string) error
}
