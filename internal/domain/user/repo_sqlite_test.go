package user

import (
	"context"
	"errors"
	"testing"

	"github.com/mutua/mutua/internal/platform/auth"
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

	u := &User{Username: "admin", HashedPassword: auth.HashPassword("password"), IsActive: true}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != u.ID || got.HashedPassword != u.HashedPassword || !got.IsActive {
		t.Errorf("stored row mismatch: %+v", got)
	}
}

func TestSQLiteRepoNotFound(t *testing.T) {
	repo := newSQLiteRepo(t)
	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteRepoDuplicateUsername(t *testing.T) {
	repo := newSQLiteRepo(t)

	first := &User{Username: "admin", HashedPassword: "simple:x", IsActive: true}
	if err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := &User{Username: "admin", HashedPassword: "simple:y", IsActive: true}
	if err := repo.Create(context.Background(), second); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}
