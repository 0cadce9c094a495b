// Package seed loads the demo dataset on first start so a fresh install is
// immediately usable. Every step is idempotent: existing data is left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mutua/mutua/internal/domain/authorization"
	"github.com/mutua/mutua/internal/domain/billing"
	"github.com/mutua/mutua/internal/domain/catalog"
	"github.com/mutua/mutua/internal/domain/patient"
	"github.com/mutua/mutua/internal/domain/usage"
	"github.com/mutua/mutua/internal/domain/user"
	"github.com/mutua/mutua/internal/platform/auth"
	"github.com/mutua/mutua/pkg/dateonly"
)

type Seeder struct {
	users          user.Repository
	patients       patient.Repository
	treatments     catalog.TreatmentRepository
	clinicServices catalog.ClinicServiceRepository
	auths          authorization.Repository
	invoices       billing.Repository
	usedServices   usage.Repository
	log            zerolog.Logger
}

func New(
	users user.Repository,
	patients patient.Repository,
	treatments catalog.TreatmentRepository,
	clinicServices catalog.ClinicServiceRepository,
	auths authorization.Repository,
	invoices billing.Repository,
	usedServices usage.Repository,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		users:          users,
		patients:       patients,
		treatments:     treatments,
		clinicServices: clinicServices,
		auths:          auths,
		invoices:       invoices,
		usedServices:   usedServices,
		log:            log,
	}
}

// Run ensures the admin account and, on an empty database, the demo
// patients, catalogs, authorizations, invoices and used services.
func (s *Seeder) Run(ctx context.Context, adminUser, adminPassword string) error {
	if err := s.ensureAdmin(ctx, adminUser, adminPassword); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	patients, err := s.ensurePatients(ctx)
	if err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}
	treatments, err := s.ensureTreatments(ctx)
	if err != nil {
		return fmt.Errorf("seed treatments: %w", err)
	}
	if err := s.ensureClinicServices(ctx); err != nil {
		return fmt.Errorf("seed clinic services: %w", err)
	}
	if err := s.ensureAuthorizations(ctx, patients, treatments); err != nil {
		return fmt.Errorf("seed authorizations: %w", err)
	}
	if err := s.ensureInvoices(ctx, patients); err != nil {
		return fmt.Errorf("seed invoices: %w", err)
	}
	if err := s.ensureUsedServices(ctx, patients); err != nil {
		return fmt.Errorf("seed used services: %w", err)
	}

	s.log.Info().Msg("seed data ensured")
	return nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, username, password string) error {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}
	return s.users.Create(ctx, &user.User{
		Username:       username,
		HashedPassword: auth.HashPassword(password),
		IsActive:       true,
	})
}

func (s *Seeder) ensurePatients(ctx context.Context) ([]*patient.Patient, error) {
	existing, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	demo := []*patient.Patient{
		{Name: "Juan", Surname: "Pérez", BirthDate: dateonly.New(1980, time.May, 15), AffiliateNumber: "A12345", MutuaMember: true},
		{Name: "María", Surname: "González", BirthDate: dateonly.New(1975, time.October, 22), AffiliateNumber: "A67890", MutuaMember: true},
	}
	for _, p := range demo {
		if err := s.patients.Create(ctx, p); err != nil {
			return nil, err
		}
	}
	return demo, nil
}

func (s *Seeder) ensureTreatments(ctx context.Context) ([]*catalog.Treatment, error) {
	existing, err := s.treatments.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	demo := []*catalog.Treatment{
		{Name: "Consulta médica general", Description: "Consulta con el médico de cabecera", Category: "consulta", Price: 50.0, MutuaIncluded: true, DurationMinutes: 20},
		{Name: "Resonancia magnética", Description: "Resonancia magnética con informe radiológico", Category: "diagnóstico", Price: 500.0, MutuaIncluded: true, DurationMinutes: 45, RequiresAuthorization: true},
		{Name: "Cirugía ambulatoria", Description: "Intervención quirúrgica sin ingreso", Category: "cirugía", Price: 1200.0, DurationMinutes: 120, RequiresAuthorization: true},
	}
	for _, t := range demo {
		if err := s.treatments.Create(ctx, t); err != nil {
			return nil, err
		}
	}
	return demo, nil
}

func (s *Seeder) ensureClinicServices(ctx context.Context) error {
	existing, err := s.clinicServices.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	demo := []*catalog.ClinicService{
		{Name: "Análisis de sangre", Description: "Analítica básica", Category: "laboratorio", Price: 30.0, MutuaIncluded: true, DurationMinutes: 10},
		{Name: "Radiografía", Description: "Radiografía simple", Category: "diagnóstico", Price: 45.0, MutuaIncluded: true, DurationMinutes: 15},
		{Name: "Cirugía estética", Description: "Intervención estética no cubierta", Category: "cirugía", Price: 2000.0, DurationMinutes: 90},
	}
	for _, cs := range demo {
		if err := s.clinicServices.Create(ctx, cs); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) ensureAuthorizations(ctx context.Context, patients []*patient.Patient, treatments []*catalog.Treatment) error {
	if len(patients) < 2 || len(treatments) < 3 {
		return nil
	}
	existing, err := s.auths.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	demo := []*authorization.Authorization{
		{
			PatientID:   patients[0].ID,
			TreatmentID: treatments[1].ID,
			RequestDate: dateonly.New(2023, time.January, 15),
			Status:      authorization.StatusApproved,
			Comments:    "Autorización aprobada sin observaciones",
		},
		{
			PatientID:   patients[1].ID,
			TreatmentID: treatments[2].ID,
			RequestDate: dateonly.New(2023, time.February, 10),
			Status:      authorization.StatusRejected,
			Comments:    "Falta documentación médica de respaldo",
		},
	}
	for _, a := range demo {
		if err := s.auths.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) ensureInvoices(ctx context.Context, patients []*patient.Patient) error {
	if len(patients) < 2 {
		return nil
	}
	for _, p := range patients[:2] {
		existing, err := s.invoices.ListByPatient(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
	}

	demo := []*billing.Invoice{
		{
			PatientID: patients[0].ID,
			IssueDate: dateonly.New(2023, time.January, 20),
			Total:     550.0,
			Status:    billing.StatusPaid,
			LineItems: []*billing.LineItem{
				{Concept: "Consulta médica", Amount: 50.0},
				{Concept: "Resonancia magnética", Amount: 500.0},
			},
		},
		{
			PatientID: patients[1].ID,
			IssueDate: dateonly.New(2023, time.February, 15),
			Total:     50.0,
			Status:    billing.StatusPending,
			LineItems: []*billing.LineItem{
				{Concept: "Consulta médica", Amount: 50.0},
			},
		},
	}
	for _, inv := range demo {
		if err := s.invoices.CreateWithLineItems(ctx, inv); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) ensureUsedServices(ctx context.Context, patients []*patient.Patient) error {
	if len(patients) < 2 {
		return nil
	}
	for _, p := range patients[:2] {
		existing, err := s.usedServices.ListByPatient(ctx, p.ID, nil, nil)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
	}

	demo := []*usage.UsedService{
		{PatientID: patients[0].ID, Description: "Consulta médica general", Date: dateonly.New(2023, time.January, 15), Cost: 50.0},
		{PatientID: patients[0].ID, Description: "Resonancia magnética", Date: dateonly.New(2023, time.January, 16), Cost: 500.0},
		{PatientID: patients[1].ID, Description: "Consulta médica general", Date: dateonly.New(2023, time.February, 10), Cost: 50.0},
	}
	for _, u := range demo {
		if err := s.usedServices.Create(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
