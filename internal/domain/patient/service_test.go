package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/pkg/dateonly"
)

type mockRepo struct {
	ordered []*Patient
}

func newMockRepo() *mockRepo { return &mockRepo{} }

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	for _, existing := range m.ordered {
		if existing.AffiliateNumber == p.AffiliateNumber {
			return ErrDuplicate
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	m.ordered = append(m.ordered, p)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	for _, p := range m.ordered {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetByAffiliateNumber(_ context.Context, n string) (*Patient, error) {
	for _, p := range m.ordered {
		if p.AffiliateNumber == n {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(_ context.Context) ([]*Patient, error) {
	return m.ordered, nil
}

func testPatient(affiliate string) *Patient {
	return &Patient{
		Name:            "Juan",
		Surname:         "Pérez",
		BirthDate:       dateonly.New(1980, time.May, 15),
		AffiliateNumber: affiliate,
		MutuaMember:     true,
	}
}

func TestCreateAndList(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Create(context.Background(), testPatient("A12345")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Create(context.Background(), testPatient("A67890")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patients, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(patients))
	}
	if patients[0].AffiliateNumber != "A12345" {
		t.Error("expected insertion order to be preserved")
	}
}

func TestCreateDuplicateAffiliate(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Create(context.Background(), testPatient("A12345")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := svc.Create(context.Background(), testPatient("A12345"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	p := testPatient("A1")
	p.Name = ""
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for missing name")
	}

	p = testPatient("")
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for missing affiliate number")
	}

	p = testPatient("A1")
	p.BirthDate = dateonly.Date{}
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for missing birth date")
	}
}

func TestExists(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := testPatient("A12345")
	svc.Create(context.Background(), p)

	ok, err := svc.Exists(context.Background(), p.ID)
	if err != nil || !ok {
		t.Errorf("expected patient to exist, got %v %v", ok, err)
	}

	ok, err = svc.Exists(context.Background(), uuid.New())
	if err != nil || ok {
		t.Errorf("expected patient to be absent, got %v %v", ok, err)
	}
}

func TestGetByAffiliateNumber(t *testing.T) {
	svc := NewService(newMockRepo())
	svc.Create(context.Background(), testPatient("A12345"))

	p, err := svc.GetByAffiliateNumber(context.Background(), "A12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FullName() != "Juan Pérez" {
		t.Errorf("expected Juan Pérez, got %s", p.FullName())
	}

	if _, err := svc.GetByAffiliateNumber(context.Background(), "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
