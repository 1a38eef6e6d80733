package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/stagehand/internal/domain"
)

// Bundle holds the converted domain objects of one import file, ready
// for persistence in declaration order.
type Bundle struct {
	PhaseTypes []*domain.PhaseType
	Vehicles   []*domain.Vehicle
	Crew       []*domain.Employee
	Events     []*domain.Event
	Phases     []*domain.Phase
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*Bundle, error) {
	now := time.Now().UTC()
	typeIDs := make(map[string]string)

	bundle := &Bundle{}

	for _, pt := range schema.PhaseTypes {
		id := uuid.New().String()
		typeIDs[pt.Ref] = id
		bundle.PhaseTypes = append(bundle.PhaseTypes, &domain.PhaseType{
			ID:               id,
			Name:             pt.Name,
			Role:             domain.PhaseRole(pt.Role),
			SequencePriority: pt.Priority,
			Color:            pt.Color,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	for _, v := range schema.Vehicles {
		bundle.Vehicles = append(bundle.Vehicles, &domain.Vehicle{
			ID:        uuid.New().String(),
			Name:      v.Name,
			Plate:     v.Plate,
			Kind:      domain.VehicleKind(v.Kind),
			Seats:     v.Seats,
			Notes:     v.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for _, c := range schema.Crew {
		bundle.Crew = append(bundle.Crew, &domain.Employee{
			ID:        uuid.New().String(),
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Role:      c.Role,
			Phone:     c.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for _, e := range schema.Events {
		start, err := parseWindowField(e.Start)
		if err != nil {
			return nil, fmt.Errorf("event %q start: %w", e.Name, err)
		}
		end, err := parseWindowField(e.End)
		if err != nil {
			return nil, fmt.Errorf("event %q end: %w", e.Name, err)
		}

		status := e.Status
		if status == "" {
			status = string(domain.EventPlanned)
		}

		eventID := uuid.New().String()
		bundle.Events = append(bundle.Events, &domain.Event{
			ID:        eventID,
			Name:      e.Name,
			Venue:     e.Venue,
			StartTime: start,
			EndTime:   end,
			Status:    domain.EventStatus(status),
			Notes:     e.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})

		for i, p := range e.Phases {
			typeID, ok := typeIDs[p.TypeRef]
			if !ok {
				return nil, fmt.Errorf("type_ref %q not found for phase %q", p.TypeRef, p.Name)
			}
			pStart, err := parseWindowField(p.Start)
			if err != nil {
				return nil, fmt.Errorf("phase %q start: %w", p.Name, err)
			}
			pEnd, err := parseWindowField(p.End)
			if err != nil {
				return nil, fmt.Errorf("phase %q end: %w", p.Name, err)
			}

			order := p.Order
			if order == 0 {
				order = i + 1
			}

			bundle.Phases = append(bundle.Phases, &domain.Phase{
				ID:            uuid.New().String(),
				EventID:       eventID,
				PhaseTypeID:   typeID,
				Name:          p.Name,
				StartTime:     pStart,
				EndTime:       pEnd,
				SequenceOrder: order,
				Color:         p.Color,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
	}

	return bundle, nil
}

func parseWindowField(s string) (time.Time, error) {
	t, err := time.ParseInLocation(windowLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	return t, nil
}
