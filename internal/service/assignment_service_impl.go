package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/timeline"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// defaultEventLength is assumed when an event has no phases yet to
// anchor the return leg: travel back starts 8h after the event start.
const defaultEventLength = 8 * time.Hour

type assignmentService struct {
	events      repository.EventRepo
	phases      repository.PhaseRepo
	types       repository.PhaseTypeRepo
	assignments repository.AssignmentRepo
	log         zerolog.Logger

	// Runs for the same event must not interleave: two concurrent
	// find-or-create passes would both create phases. Serialized per
	// event id.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAssignmentService(
	events repository.EventRepo,
	phases repository.PhaseRepo,
	types repository.PhaseTypeRepo,
	assignments repository.AssignmentRepo,
	log zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		events:      events,
		phases:      phases,
		types:       types,
		assignments: assignments,
		log:         log,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *assignmentService) eventLock(eventID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[eventID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[eventID] = lock
	}
	return lock
}

func (s *assignmentService) EnsureVehicleAssignment(ctx context.Context, req AssignmentRequest) (*AssignmentPlan, error) {
	lock := s.eventLock(req.EventID)
	lock.Lock()
	defer lock.Unlock()

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	// Resolve all four phase types up front; a missing one aborts the
	// whole operation before anything is written.
	phaseTypes := make(map[domain.PhaseRole]*domain.PhaseType, len(domain.LogisticsRoles))
	for _, role := range domain.LogisticsRoles {
		pt, err := s.types.GetByRole(ctx, role)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: no phase type with role %q", ErrMissingPhaseTypes, role)
			}
			return nil, err
		}
		phaseTypes[role] = pt
	}

	existing, err := s.phases.ListByEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	windows, err := s.deriveWindows(event, existing, phaseTypes, req.Durations)
	if err != nil {
		return nil, err
	}

	plan := &AssignmentPlan{Phases: make(map[domain.PhaseRole]*domain.Phase, len(domain.LogisticsRoles))}
	for _, role := range domain.LogisticsRoles {
		pt := phaseTypes[role]

		// Reuse an existing phase of this type as-is: a human may have
		// adjusted its window and the orchestrator must not undo that.
		if found := findPhaseByType(existing, pt.ID); found != nil {
			plan.Phases[role] = found
			continue
		}

		now := time.Now().UTC()
		phase := &domain.Phase{
			ID:            uuid.New().String(),
			EventID:       req.EventID,
			PhaseTypeID:   pt.ID,
			Name:          pt.Name,
			StartTime:     windows[role].Start,
			EndTime:       windows[role].End,
			SequenceOrder: pt.SequencePriority,
			Color:         pt.Color,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.phases.Create(ctx, phase); err != nil {
			// Phases created so far stay; a retry finds and reuses them.
			return nil, fmt.Errorf("creating %s phase: %w", role, err)
		}
		plan.Phases[role] = phase
		plan.Created = append(plan.Created, role)
	}

	loading := plan.Phases[domain.RoleLoading]
	unloading := plan.Phases[domain.RoleUnloading]

	now := time.Now().UTC()
	assignment := &domain.VehicleAssignment{
		ID:            uuid.New().String(),
		PhaseID:       loading.ID,
		EventID:       req.EventID,
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		AssignedStart: loading.StartTime,
		AssignedEnd:   unloading.EndTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.assignments.Upsert(ctx, assignment); err != nil {
		return nil, err
	}
	plan.Assignment = assignment

	s.log.Info().
		Str("event", req.EventID).
		Str("vehicle", req.VehicleID).
		Int("phases_created", len(plan.Created)).
		Time("from", assignment.AssignedStart).
		Time("to", assignment.AssignedEnd).
		Msg("vehicle assignment ensured")

	return plan, nil
}

// deriveWindows computes the stored window for each logistics role. The
// return leg anchors on the latest end among non-logistics phases; with
// no such phase the event is assumed to run defaultEventLength.
func (s *assignmentService) deriveWindows(
	event *domain.Event,
	existing []*domain.Phase,
	phaseTypes map[domain.PhaseRole]*domain.PhaseType,
	d timeline.Durations,
) (map[domain.PhaseRole]timeline.Window, error) {
	logisticsTypeIDs := make(map[string]bool, len(phaseTypes))
	for _, pt := range phaseTypes {
		logisticsTypeIDs[pt.ID] = true
	}

	anchor := event.StartTime.Add(defaultEventLength)
	anchored := false
	for _, p := range existing {
		if logisticsTypeIDs[p.PhaseTypeID] {
			continue
		}
		if !anchored || p.EndTime.After(anchor) {
			anchor = p.EndTime
			anchored = true
		}
	}
	lw, err := timeline.DeriveLogisticsWindows(event.StartTime, anchor, d,
		timeline.DefaultLogisticsStart(event.StartTime, d))
	if err != nil {
		return nil, err
	}

	return map[domain.PhaseRole]timeline.Window{
		domain.RoleLoading:    lw.LoadingWithPreparation(),
		domain.RoleTravelOut:  lw.TravelOut,
		domain.RoleTravelBack: lw.TravelBack,
		domain.RoleUnloading:  lw.Unloading,
	}, nil
}

func findPhaseByType(phases []*domain.Phase, phaseTypeID string) *domain.Phase {
	for _, p := range phases {
		if p.PhaseTypeID == phaseTypeID {
			return p
		}
	}
	return nil
}

func (s *assignmentService) ListByEvent(ctx context.Context, eventID string) ([]*domain.VehicleAssignment, error) {
	return s.assignments.ListByEvent(ctx, eventID)
}

func (s *assignmentService) Remove(ctx context.Context, id string) error {
	return s.assignments.Delete(ctx, id)
}
