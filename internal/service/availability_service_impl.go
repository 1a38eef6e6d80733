package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/timeline"
	"github.com/rs/zerolog"
)

type availabilityService struct {
	assignments repository.AssignmentRepo
	log         zerolog.Logger
}

func NewAvailabilityService(assignments repository.AssignmentRepo, log zerolog.Logger) AvailabilityService {
	return &availabilityService{assignments: assignments, log: log}
}

func (s *availabilityService) Check(ctx context.Context, vehicleID string, w timeline.Window, excludeEventID string) ([]*domain.VehicleAssignment, error) {
	conflicts, err := s.assignments.ListOverlapping(ctx, vehicleID, w, excludeEventID)
	if err != nil {
		s.log.Warn().Err(err).Str("vehicle", vehicleID).Msg("availability lookup errored")
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityCheck, err)
	}
	return conflicts, nil
}
