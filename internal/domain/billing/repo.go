package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// CreateWithLineItems persists the invoice and all its detalles
	// atomically: either everything lands or nothing does.
	CreateWithLineItems(ctx context.Context, inv *Invoice) error
	// ListByPatient returns the patient's invoices, oldest first, with
	// detalles attached.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Invoice, error)
}
