package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/timeline"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type phaseService struct {
	phases repository.PhaseRepo
	uow    db.UnitOfWork
	log    zerolog.Logger
}

func NewPhaseService(phases repository.PhaseRepo, uow db.UnitOfWork, log zerolog.Logger) PhaseService {
	return &phaseService{phases: phases, uow: uow, log: log}
}

func (s *phaseService) Create(ctx context.Context, p *domain.Phase) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.phases.Create(ctx, p)
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Phase, error) {
	return s.phases.ListByEvent(ctx, eventID)
}

func (s *phaseService) Update(ctx context.Context, p *domain.Phase) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.phases.Update(ctx, p)
}

// CommitWindows writes a draft set in one transaction. Window validation
// happens before any write so a bad draft cannot half-commit, and any
// store failure rolls the whole batch back, so the UI never reports
// "saved" after a partial write.
func (s *phaseService) CommitWindows(ctx context.Context, drafts map[string]timeline.Window) error {
	if len(drafts) == 0 {
		return nil
	}

	// Stable write order keeps failure injection and logs deterministic.
	ids := make([]string, 0, len(drafts))
	for id := range drafts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if w := drafts[id]; w.End.Before(w.Start) {
			return fmt.Errorf("%w (phase %s): %v", ErrPersistFailed, id, domain.ErrPhaseWindowInverted)
		}
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		now := time.Now().UTC()
		for _, id := range ids {
			phase, err := txPhases.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("%w (phase %s): %v", ErrPersistFailed, id, err)
			}
			phase.SetWindow(drafts[id])
			phase.UpdatedAt = now
			if err := txPhases.Update(ctx, phase); err != nil {
				return fmt.Errorf("%w (phase %s): %v", ErrPersistFailed, id, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Int("drafts", len(drafts)).Msg("draft commit rolled back")
		return err
	}

	s.log.Info().Int("drafts", len(drafts)).Msg("draft commit saved")
	return nil
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}
