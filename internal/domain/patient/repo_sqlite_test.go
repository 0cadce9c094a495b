package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
)

func newSQLiteRepo(t *testing.T) Repository {
	t.Helper()
	store, err := db.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRepoSQLite(store)
}

func TestSQLiteRepoRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)

	p := testPatient("A12345")
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.AffiliateNumber != "A12345" || got.Name != "Juan" || !got.MutuaMember {
		t.Errorf("stored row mismatch: %+v", got)
	}
	if !got.BirthDate.Equal(p.BirthDate.Time) {
		t.Errorf("birth date mismatch: got %v, want %v", got.BirthDate, p.BirthDate)
	}

	byAffiliate, err := repo.GetByAffiliateNumber(context.Background(), "A12345")
	if err != nil {
		t.Fatalf("get by affiliate: %v", err)
	}
	if byAffiliate.ID != p.ID {
		t.Errorf("affiliate lookup returned wrong row: %+v", byAffiliate)
	}
}

func TestSQLiteRepoNotFound(t *testing.T) {
	repo := newSQLiteRepo(t)

	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByAffiliateNumber(context.Background(), "ZZZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteRepoDuplicateAffiliate(t *testing.T) {
	repo := newSQLiteRepo(t)

	if err := repo.Create(context.Background(), testPatient("A12345")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(context.Background(), testPatient("A12345")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestSQLiteRepoListInsertionOrder(t *testing.T) {
	repo := newSQLiteRepo(t)

	for i := 0; i < 3; i++ {
		if err := repo.Create(context.Background(), testPatient(fmt.Sprintf("A%05d", i))); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	patients, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(patients) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(patients))
	}
	for i, p := range patients {
		if want := fmt.Sprintf("A%05d", i); p.AffiliateNumber != want {
			t.Errorf("position %d: got %s, want %s", i, p.AffiliateNumber, want)
		}
	}
}
