package usage

import (
	"context"

	"github.com/google/uuid"

	"github.com/mutua/mutua/pkg/dateonly"
)

type Repository interface {
	Create(ctx context.Context, u *UsedService) error
	// ListByPatient returns the patient's used services oldest first,
	// optionally bounded by an inclusive date range. Nil bounds are open.
	ListByPatient(ctx context.Context, patientID uuid.UUID, from, to *dateonly.Date) ([]*UsedService, error)
}
