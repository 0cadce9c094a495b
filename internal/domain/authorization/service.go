package authorization

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/domain/catalog"
	"github.com/mutua/mutua/pkg/dateonly"
)

var (
	ErrUnknownPatient   = errors.New("unknown patient")
	ErrUnknownTreatment = errors.New("unknown treatment")
)

// PatientChecker is the slice of the patient service the workflow needs.
type PatientChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// TreatmentCatalog resolves a treatment and its requiere_autorizacion flag.
type TreatmentCatalog interface {
	GetTreatment(ctx context.Context, id uuid.UUID) (*catalog.Treatment, error)
}

// DecisionPolicy picks the state a newly created authorization enters.
// The stock policy approves everything; a review queue would swap in one
// returning StatusPending.
type DecisionPolicy func(t *catalog.Treatment) string

func approveAll(*catalog.Treatment) string { return StatusApproved }

type Service struct {
	auths      Repository
	patients   PatientChecker
	treatments TreatmentCatalog
	policy     DecisionPolicy
	today      func() dateonly.Date
}

type Option func(*Service)

func WithDecisionPolicy(p DecisionPolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithClock fixes the request date for tests.
func WithClock(today func() dateonly.Date) Option {
	return func(s *Service) { s.today = today }
}

func NewService(auths Repository, patients PatientChecker, treatments TreatmentCatalog, opts ...Option) *Service {
	s := &Service{
		auths:      auths,
		patients:   patients,
		treatments: treatments,
		policy:     approveAll,
		today:      dateonly.Today,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestOutcome is the result of an authorization request. Authorization is
// nil when the treatment does not gate on one.
type RequestOutcome struct {
	Required      bool
	Authorization *Authorization
}

// Request runs the authorization workflow: both references must exist; a
// treatment without requiere_autorizacion produces no record, any other
// produces exactly one in the state the decision policy picks.
func (s *Service) Request(ctx context.Context, patientID, treatmentID uuid.UUID, comments string) (*RequestOutcome, error) {
	ok, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownPatient
	}

	t, err := s.treatments.GetTreatment(ctx, treatmentID)
	if errors.Is(err, catalog.ErrTreatmentNotFound) {
		return nil, ErrUnknownTreatment
	}
	if err != nil {
		return nil, err
	}

	if !t.RequiresAuthorization {
		return &RequestOutcome{Required: false}, nil
	}

	a := &Authorization{
		PatientID:   patientID,
		TreatmentID: treatmentID,
		RequestDate: s.today(),
		Status:      s.policy(t),
		Comments:    comments,
	}
	if err := s.auths.Create(ctx, a); err != nil {
		return nil, err
	}
	return &RequestOutcome{Required: true, Authorization: a}, nil
}

func (s *Service) List(ctx context.Context) ([]*Authorization, error) {
	return s.auths.List(ctx)
}

// ListByPatient returns the patient's authorizations, oldest first. The
// patient must exist even when the list would be empty.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Authorization, error) {
	ok, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownPatient
	}
	return s.auths.ListByPatient(ctx, patientID)
}
