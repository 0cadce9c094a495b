package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByAffiliateNumber(ctx context.Context, affiliateNumber string) (*Patient, error)
	// List returns all patients in insertion order.
	List(ctx context.Context) ([]*Patient, error)
}
