package testutil

import (
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/google/uuid"
)

// Default test event: 2025-06-01 10:00-18:00 UTC, the reference day used
// across scheduling tests.
var (
	TestEventStart = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	TestEventEnd   = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
)

type EventOption func(*domain.Event)

func WithEventWindow(start, end time.Time) EventOption {
	return func(e *domain.Event) {
		e.StartTime = start
		e.EndTime = end
	}
}

func WithEventStatus(s domain.EventStatus) EventOption {
	return func(e *domain.Event) { e.Status = s }
}

func NewTestEvent(name string, opts ...EventOption) *domain.Event {
	now := time.Now().UTC()
	e := &domain.Event{
		ID:        uuid.New().String(),
		Name:      name,
		Venue:     "Test Hall",
		StartTime: TestEventStart,
		EndTime:   TestEventEnd,
		Status:    domain.EventPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestPhaseType(name string, role domain.PhaseRole, priority int) *domain.PhaseType {
	now := time.Now().UTC()
	return &domain.PhaseType{
		ID:               uuid.New().String(),
		Name:             name,
		Role:             role,
		SequencePriority: priority,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewLogisticsPhaseTypes returns the four logistics types plus the event
// type, ordered by sequence priority.
func NewLogisticsPhaseTypes() []*domain.PhaseType {
	return []*domain.PhaseType{
		NewTestPhaseType("Loading", domain.RoleLoading, 10),
		NewTestPhaseType("Travel out", domain.RoleTravelOut, 20),
		NewTestPhaseType("Event", domain.RoleEvent, 30),
		NewTestPhaseType("Travel back", domain.RoleTravelBack, 40),
		NewTestPhaseType("Unloading", domain.RoleUnloading, 50),
	}
}

type PhaseOption func(*domain.Phase)

func WithSequenceOrder(order int) PhaseOption {
	return func(p *domain.Phase) { p.SequenceOrder = order }
}

func WithColor(color string) PhaseOption {
	return func(p *domain.Phase) { p.Color = color }
}

func NewTestPhase(eventID, phaseTypeID, name string, start, end time.Time, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:          uuid.New().String(),
		EventID:     eventID,
		PhaseTypeID: phaseTypeID,
		Name:        name,
		StartTime:   start,
		EndTime:     end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestVehicle(name string) *domain.Vehicle {
	now := time.Now().UTC()
	return &domain.Vehicle{
		ID:        uuid.New().String(),
		Name:      name,
		Plate:     "ST-" + name,
		Kind:      domain.VehicleVan,
		Seats:     3,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestEmployee(first, last string) *domain.Employee {
	now := time.Now().UTC()
	return &domain.Employee{
		ID:        uuid.New().String(),
		FirstName: first,
		LastName:  last,
		Role:      "stagehand",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
