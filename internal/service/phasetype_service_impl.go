package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/google/uuid"
)

type phaseTypeService struct {
	types repository.PhaseTypeRepo
}

func NewPhaseTypeService(types repository.PhaseTypeRepo) PhaseTypeService {
	return &phaseTypeService{types: types}
}

func (s *phaseTypeService) Create(ctx context.Context, pt *domain.PhaseType) error {
	if pt.ID == "" {
		pt.ID = uuid.New().String()
	}
	if pt.Role == "" {
		pt.Role = domain.RoleGeneric
	}
	now := time.Now().UTC()
	pt.CreatedAt = now
	pt.UpdatedAt = now
	return s.types.Create(ctx, pt)
}

func (s *phaseTypeService) List(ctx context.Context) ([]*domain.PhaseType, error) {
	return s.types.List(ctx)
}

func (s *phaseTypeService) GetByRole(ctx context.Context, role domain.PhaseRole) (*domain.PhaseType, error) {
	return s.types.GetByRole(ctx, role)
}

// defaultPhaseTypes is the seeded catalog. Sequence priorities leave
// room for user-defined types between the standard ones.
var defaultPhaseTypes = []struct {
	name     string
	role     domain.PhaseRole
	priority int
	color    string
}{
	{"Loading", domain.RoleLoading, 10, "#e0a030"},
	{"Travel out", domain.RoleTravelOut, 20, "#4090d0"},
	{"Event", domain.RoleEvent, 30, "#50b050"},
	{"Travel back", domain.RoleTravelBack, 40, "#4090d0"},
	{"Unloading", domain.RoleUnloading, 50, "#e0a030"},
}

func (s *phaseTypeService) SeedDefaults(ctx context.Context) ([]*domain.PhaseType, error) {
	var seeded []*domain.PhaseType
	for _, def := range defaultPhaseTypes {
		existing, err := s.types.GetByRole(ctx, def.role)
		if err == nil {
			seeded = append(seeded, existing)
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		pt := &domain.PhaseType{
			Name:             def.name,
			Role:             def.role,
			SequencePriority: def.priority,
			Color:            def.color,
		}
		if err := s.Create(ctx, pt); err != nil {
			return nil, err
		}
		seeded = append(seeded, pt)
	}
	return seeded, nil
}

func (s *phaseTypeService) Delete(ctx context.Context, id string) error {
	return s.types.Delete(ctx, id)
}
