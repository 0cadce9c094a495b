package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Name == "" || p.Surname == "" {
		return fmt.Errorf("nombre and apellido are required")
	}
	if p.AffiliateNumber == "" {
		return fmt.Errorf("numero_afiliado is required")
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("fecha_nacimiento is required")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetByAffiliateNumber(ctx context.Context, affiliateNumber string) (*Patient, error) {
	return s.patients.GetByAffiliateNumber(ctx, affiliateNumber)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

// Exists reports whether a patient id is known. Patient-scoped endpoints in
// other domains use this for their 404-first check.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.patients.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
