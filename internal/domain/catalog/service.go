package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	treatments TreatmentRepository
	services   ClinicServiceRepository
}

func NewService(treatments TreatmentRepository, services ClinicServiceRepository) *Service {
	return &Service{treatments: treatments, services: services}
}

func (s *Service) CreateTreatment(ctx context.Context, t *Treatment) error {
	if t.Name == "" {
		return fmt.Errorf("servicio is required")
	}
	if t.Price < 0 {
		return fmt.Errorf("precio must not be negative")
	}
	return s.treatments.Create(ctx, t)
}

// GetTreatment is also the lookup authorization requests resolve a
// treatment's requiere_autorizacion flag through.
func (s *Service) GetTreatment(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return s.treatments.GetByID(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context) ([]*Treatment, error) {
	return s.treatments.List(ctx)
}

func (s *Service) CreateClinicService(ctx context.Context, cs *ClinicService) error {
	if cs.Name == "" {
		return fmt.Errorf("nombre is required")
	}
	if cs.Price < 0 {
		return fmt.Errorf("precio must not be negative")
	}
	return s.services.Create(ctx, cs)
}

func (s *Service) ListClinicServices(ctx context.Context) ([]*ClinicService, error) {
	return s.services.List(ctx)
}

func (s *Service) ListMutuaServices(ctx context.Context) ([]*ClinicService, error) {
	return s.services.ListMutua(ctx)
}
