package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PatientChecker is the slice of the patient service invoicing needs.
type PatientChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	invoices Repository
	patients PatientChecker
	log      zerolog.Logger
}

func NewService(invoices Repository, patients PatientChecker, log zerolog.Logger) *Service {
	return &Service{invoices: invoices, patients: patients, log: log}
}

// Create validates and stores an invoice with its detalles in one
// transaction. The declared monto_total is kept as-is, but a mismatch
// against the sum of the detalles is logged for reconciliation.
func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	if !validStatus(inv.Status) {
		return fmt.Errorf("estado %q is not one of pendiente, pagada, vencida", inv.Status)
	}
	if inv.IssueDate.IsZero() {
		return fmt.Errorf("fecha_emision is required")
	}
	if inv.Total < 0 {
		return fmt.Errorf("monto_total must not be negative")
	}
	for _, item := range inv.LineItems {
		if item.Concept == "" {
			return fmt.Errorf("every detalle needs a concepto")
		}
		if item.Amount < 0 {
			return fmt.Errorf("detalle %q: monto must not be negative", item.Concept)
		}
	}

	ok, err := s.patients.Exists(ctx, inv.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownPatient
	}

	if sum := sumLineItems(inv.LineItems); len(inv.LineItems) > 0 && !sum.Equal(decimal.NewFromFloat(inv.Total)) {
		s.log.Warn().
			Str("id_paciente", inv.PatientID.String()).
			Float64("monto_total", inv.Total).
			Str("suma_detalles", sum.String()).
			Msg("invoice total does not match its line items")
	}

	return s.invoices.CreateWithLineItems(ctx, inv)
}

// ListByPatient returns the patient's invoices with detalles, oldest first.
// The patient must exist even when the list would be empty.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Invoice, error) {
	ok, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownPatient
	}
	return s.invoices.ListByPatient(ctx, patientID)
}

func sumLineItems(items []*LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Amount))
	}
	return sum
}
