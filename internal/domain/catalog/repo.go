package catalog

import (
	"context"

	"github.com/google/uuid"
)

type TreatmentRepository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error)
	List(ctx context.Context) ([]*Treatment, error)
}

type ClinicServiceRepository interface {
	Create(ctx context.Context, s *ClinicService) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicService, error)
	// List returns every service; ListMutua only those with incluido_mutua.
	List(ctx context.Context) ([]*ClinicService, error)
	ListMutua(ctx context.Context) ([]*ClinicService, error)
}
