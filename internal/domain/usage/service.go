package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mutua/mutua/internal/domain/patient"
	"github.com/mutua/mutua/pkg/dateonly"
)

// PatientDirectory resolves patients for report headers and 404 checks.
type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	services Repository
	patients PatientDirectory
}

func NewService(services Repository, patients PatientDirectory) *Service {
	return &Service{services: services, patients: patients}
}

func (s *Service) Create(ctx context.Context, u *UsedService) error {
	if u.Description == "" {
		return fmt.Errorf("descripcion is required")
	}
	if u.Date.IsZero() {
		return fmt.Errorf("fecha is required")
	}
	if u.Cost < 0 {
		return fmt.Errorf("costo must not be negative")
	}
	if _, err := s.lookupPatient(ctx, u.PatientID); err != nil {
		return err
	}
	return s.services.Create(ctx, u)
}

// ListByPatient returns the patient's used services within the optional
// inclusive range. The patient must exist even when the list is empty.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, from, to *dateonly.Date) ([]*UsedService, error) {
	if _, err := s.lookupPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.services.ListByPatient(ctx, patientID, from, to)
}

// Report builds the usage summary. The total is an exact decimal sum of the
// costs, converted to float only at the JSON boundary.
func (s *Service) Report(ctx context.Context, patientID uuid.UUID, from, to *dateonly.Date) (*Report, error) {
	p, err := s.lookupPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	services, err := s.services.ListByPatient(ctx, patientID, from, to)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, u := range services {
		total = total.Add(decimal.NewFromFloat(u.Cost))
	}

	period := Period{From: "Inicio", To: "Actualidad"}
	if from != nil {
		period.From = from.String()
	}
	if to != nil {
		period.To = to.String()
	}

	totalFloat, _ := total.Float64()
	return &Report{
		PatientName:     p.FullName(),
		AffiliateNumber: p.AffiliateNumber,
		Period:          period,
		Services:        services,
		Total:           totalFloat,
	}, nil
}

func (s *Service) lookupPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if errors.Is(err, patient.ErrNotFound) {
		return nil, ErrUnknownPatient
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
