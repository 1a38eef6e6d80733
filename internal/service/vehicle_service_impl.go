package service

import (
	"context"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/google/uuid"
)

type vehicleService struct {
	vehicles repository.VehicleRepo
}

func NewVehicleService(vehicles repository.VehicleRepo) VehicleService {
	return &vehicleService{vehicles: vehicles}
}

func (s *vehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Kind == "" {
		v.Kind = domain.VehicleVan
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.vehicles.Create(ctx, v)
}

func (s *vehicleService) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *vehicleService) List(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *vehicleService) Update(ctx context.Context, v *domain.Vehicle) error {
	v.UpdatedAt = time.Now().UTC()
	return s.vehicles.Update(ctx, v)
}

func (s *vehicleService) Delete(ctx context.Context, id string) error {
	return s.vehicles.Delete(ctx, id)
}
