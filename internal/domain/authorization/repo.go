package authorization

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Authorization) error
	List(ctx context.Context) ([]*Authorization, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Authorization, error)
}
