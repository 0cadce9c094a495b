package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
)

func newSQLiteRepos(t *testing.T) (TreatmentRepository, ClinicServiceRepository) {
	t.Helper()
	store, err := db.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewTreatmentRepoSQLite(store), NewClinicServiceRepoSQLite(store)
}

func TestSQLiteTreatmentRoundTrip(t *testing.T) {
	treatments, _ := newSQLiteRepos(t)

	tr := &Treatment{
		Name:                  "Resonancia magnética",
		Description:           "Resonancia magnética de columna",
		Category:              "diagnóstico",
		Price:                 500.0,
		MutuaIncluded:         true,
		DurationMinutes:       60,
		RequiresAuthorization: true,
	}
	if err := treatments.Create(context.Background(), tr); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := treatments.GetByID(context.Background(), tr.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != tr.Name || got.Price != 500.0 || !got.RequiresAuthorization {
		t.Errorf("stored row mismatch: %+v", got)
	}
}

func TestSQLiteTreatmentNotFound(t *testing.T) {
	treatments, _ := newSQLiteRepos(t)

	_, err := treatments.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrTreatmentNotFound) {
		t.Errorf("expected ErrTreatmentNotFound, got %v", err)
	}
}

func TestSQLiteClinicServiceMutuaFilter(t *testing.T) {
	_, services := newSQLiteRepos(t)

	rows := []*ClinicService{
		{Name: "Análisis de sangre", Price: 30, MutuaIncluded: true},
		{Name: "Cirugía estética", Price: 2000, MutuaIncluded: false},
		{Name: "Radiografía", Price: 45, MutuaIncluded: true},
	}
	for _, s := range rows {
		if err := services.Create(context.Background(), s); err != nil {
			t.Fatalf("create %s: %v", s.Name, err)
		}
	}

	all, err := services.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 services, got %d", len(all))
	}

	mutua, err := services.ListMutua(context.Background())
	if err != nil {
		t.Fatalf("list mutua: %v", err)
	}
	if len(mutua) != 2 {
		t.Fatalf("expected 2 mutua services, got %d", len(mutua))
	}
	if mutua[0].Name != "Análisis de sangre" || mutua[1].Name != "Radiografía" {
		t.Errorf("unexpected order: %s, %s", mutua[0].Name, mutua[1].Name)
	}
}
