package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteDB wraps the embedded fallback store. The schema is ensured at open
// so a fresh file is immediately usable, mirroring what migrations do for
// the primary store.
type SQLiteDB struct {
	*sql.DB
}

// sqliteSchema is the full relational schema for the embedded engine. UUIDs
// are stored as text, dates as ISO-8601 text.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS pacientes (
    id TEXT PRIMARY KEY,
    nombre TEXT NOT NULL,
    apellido TEXT NOT NULL,
    fecha_nacimiento TEXT NOT NULL,
    numero_afiliado TEXT NOT NULL UNIQUE,
    pertenece_mutua INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tratamientos (
    id TEXT PRIMARY KEY,
    servicio TEXT NOT NULL,
    descripcion TEXT NOT NULL DEFAULT '',
    tipo_servicio TEXT NOT NULL DEFAULT '',
    precio REAL NOT NULL CHECK (precio >= 0),
    incluido_mutua INTEGER NOT NULL DEFAULT 0,
    duracion_minutos INTEGER NOT NULL DEFAULT 0,
    requiere_autorizacion INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS servicios_clinica (
    id TEXT PRIMARY KEY,
    nombre TEXT NOT NULL,
    descripcion TEXT NOT NULL DEFAULT '',
    tipo_servicio TEXT NOT NULL DEFAULT '',
    precio REAL NOT NULL CHECK (precio >= 0),
    incluido_mutua INTEGER NOT NULL DEFAULT 0,
    duracion_minutos INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS autorizaciones (
    id TEXT PRIMARY KEY,
    id_paciente TEXT NOT NULL REFERENCES pacientes(id),
    id_tratamiento TEXT NOT NULL REFERENCES tratamientos(id),
    fecha_solicitud TEXT NOT NULL,
    estado TEXT NOT NULL CHECK (estado IN ('pendiente', 'aprobada', 'rechazada')),
    comentarios TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS facturas (
    id TEXT PRIMARY KEY,
    id_paciente TEXT NOT NULL REFERENCES pacientes(id),
    fecha_emision TEXT NOT NULL,
    monto_total REAL NOT NULL CHECK (monto_total >= 0),
    estado TEXT NOT NULL CHECK (estado IN ('pendiente', 'pagada', 'vencida')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS detalles_factura (
    id TEXT PRIMARY KEY,
    id_factura TEXT NOT NULL REFERENCES facturas(id),
    concepto TEXT NOT NULL,
    monto REAL NOT NULL CHECK (monto >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS servicios_utilizados (
    id TEXT PRIMARY KEY,
    id_paciente TEXT NOT NULL REFERENCES pacientes(id),
    descripcion TEXT NOT NULL,
    fecha TEXT NOT NULL,
    costo REAL NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_autorizaciones_paciente ON autorizaciones(id_paciente);
CREATE INDEX IF NOT EXISTS idx_facturas_paciente ON facturas(id_paciente);
CREATE INDEX IF NOT EXISTS idx_detalles_factura ON detalles_factura(id_factura);
CREATE INDEX IF NOT EXISTS idx_servicios_utilizados_paciente ON servicios_utilizados(id_paciente);
`

// OpenSQLite opens (creating if needed) the embedded store at path and
// ensures the schema. Use ":memory:" for an ephemeral store in tests.
func OpenSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}

	// The driver is in-process; a single writer avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure sqlite schema: %w", err)
	}

	return &SQLiteDB{DB: conn}, nil
}
