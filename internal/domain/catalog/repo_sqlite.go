package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
)

type sqliteRow interface {
	Scan(dest ...interface{}) error
}

type treatmentRepoSQLite struct{ db *db.SQLiteDB }

func NewTreatmentRepoSQLite(sq *db.SQLiteDB) TreatmentRepository {
	return &treatmentRepoSQLite{db: sq}
}

func scanTreatmentSQLite(row sqliteRow) (*Treatment, error) {
	var t Treatment
	var id string
	err := row.Scan(&id, &t.Name, &t.Description, &t.Category, &t.Price,
		&t.MutuaIncluded, &t.DurationMinutes, &t.RequiresAuthorization, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTreatmentNotFound
	}
	if err != nil {
		return nil, err
	}
	t.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *treatmentRepoSQLite) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tratamientos (id, servicio, descripcion, tipo_servicio, precio, incluido_mutua, duracion_minutos, requiere_autorizacion, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID.String(), t.Name, t.Description, t.Category, t.Price,
		t.MutuaIncluded, t.DurationMinutes, t.RequiresAuthorization, t.CreatedAt)
	return err
}

func (r *treatmentRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return scanTreatmentSQLite(r.db.QueryRowContext(ctx,
		`SELECT `+treatmentCols+` FROM tratamientos WHERE id = ?`, id.String()))
}

func (r *treatmentRepoSQLite) List(ctx context.Context) ([]*Treatment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+treatmentCols+` FROM tratamientos ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	treatments := []*Treatment{}
	for rows.Next() {
		t, err := scanTreatmentSQLite(rows)
		if err != nil {
			return nil, err
		}
		treatments = append(treatments, t)
	}
	return treatments, rows.Err()
}

type clinicServiceRepoSQLite struct{ db *db.SQLiteDB }

func NewClinicServiceRepoSQLite(sq *db.SQLiteDB) ClinicServiceRepository {
	return &clinicServiceRepoSQLite{db: sq}
}

func scanClinicServiceSQLite(row sqliteRow) (*ClinicService, error) {
	var s ClinicService
	var id string
	err := row.Scan(&id, &s.Name, &s.Description, &s.Category, &s.Price,
		&s.MutuaIncluded, &s.DurationMinutes, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	s.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *clinicServiceRepoSQLite) Create(ctx context.Context, s *ClinicService) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO servicios_clinica (id, nombre, descripcion, tipo_servicio, precio, incluido_mutua, duracion_minutos, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(), s.Name, s.Description, s.Category, s.Price,
		s.MutuaIncluded, s.DurationMinutes, s.CreatedAt)
	return err
}

func (r *clinicServiceRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*ClinicService, error) {
	return scanClinicServiceSQLite(r.db.QueryRowContext(ctx,
		`SELECT `+clinicServiceCols+` FROM servicios_clinica WHERE id = ?`, id.String()))
}

func (r *clinicServiceRepoSQLite) List(ctx context.Context) ([]*ClinicService, error) {
	return r.list(ctx, `SELECT `+clinicServiceCols+` FROM servicios_clinica ORDER BY created_at ASC, rowid ASC`)
}

func (r *clinicServiceRepoSQLite) ListMutua(ctx context.Context) ([]*ClinicService, error) {
	return r.list(ctx, `SELECT `+clinicServiceCols+` FROM servicios_clinica WHERE incluido_mutua = 1 ORDER BY created_at ASC, rowid ASC`)
}

func (r *clinicServiceRepoSQLite) list(ctx context.Context, query string) ([]*ClinicService, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []*ClinicService{}
	for rows.Next() {
		s, err := scanClinicServiceSQLite(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}
