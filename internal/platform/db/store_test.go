package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestConnectFallsBackToSQLite(t *testing.T) {
	// An unparseable URL makes the primary attempt fail immediately.
	store, err := Connect(context.Background(), "not-a-valid-url", ":memory:", 2, 1, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	if store.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", store.Driver)
	}
	if store.SQLite == nil || store.Pool != nil {
		t.Error("expected sqlite handle only")
	}
}

func TestConnectSQLiteDirect(t *testing.T) {
	// No primary configured: the fallback is used without a warning path.
	store, err := Connect(context.Background(), "", ":memory:", 2, 1, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	if store.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", store.Driver)
	}
}

func TestConnectNoStoreConfigured(t *testing.T) {
	if _, err := Connect(context.Background(), "", "", 2, 1, zerolog.Nop()); err == nil {
		t.Error("expected error when no store is configured")
	}
}

func TestOpenSQLiteAppliesSchema(t *testing.T) {
	store, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	for _, table := range []string{
		"users", "pacientes", "tratamientos", "servicios_clinica",
		"autorizaciones", "facturas", "detalles_factura", "servicios_utilizados",
	} {
		var count int
		err := store.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count)
		if err != nil {
			t.Fatalf("query sqlite_master: %v", err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}
}

func TestOpenSQLiteIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/mutua.db"

	first, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	second.Close()
}
