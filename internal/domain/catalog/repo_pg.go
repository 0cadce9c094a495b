package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type treatmentRepoPG struct{ pool *pgxpool.Pool }

func NewTreatmentRepoPG(pool *pgxpool.Pool) TreatmentRepository { return &treatmentRepoPG{pool: pool} }

const treatmentCols = `id, servicio, descripcion, tipo_servicio, precio, incluido_mutua, duracion_minutos, requiere_autorizacion, created_at`

func scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.Price,
		&t.MutuaIncluded, &t.DurationMinutes, &t.RequiresAuthorization, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTreatmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *treatmentRepoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tratamientos (id, servicio, descripcion, tipo_servicio, precio, incluido_mutua, duracion_minutos, requiere_autorizacion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Description, t.Category, t.Price,
		t.MutuaIncluded, t.DurationMinutes, t.RequiresAuthorization, t.CreatedAt)
	return err
}

func (r *treatmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return scanTreatment(r.pool.QueryRow(ctx,
		`SELECT `+treatmentCols+` FROM tratamientos WHERE id = $1`, id))
}

func (r *treatmentRepoPG) List(ctx context.Context) ([]*Treatment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+treatmentCols+` FROM tratamientos ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	treatments := []*Treatment{}
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		treatments = append(treatments, t)
	}
	return treatments, rows.Err()
}

type clinicServiceRepoPG struct{ pool *pgxpool.Pool }

func NewClinicServiceRepoPG(pool *pgxpool.Pool) ClinicServiceRepository {
	return &clinicServiceRepoPG{pool: pool}
}

const clinicServiceCols = `id, nombre, descripcion, tipo_servicio, precio, incluido_mutua, duracion_minutos, created_at`

func scanClinicService(row pgx.Row) (*ClinicService, error) {
	var s ClinicService
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.Price,
		&s.MutuaIncluded, &s.DurationMinutes, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *clinicServiceRepoPG) Create(ctx context.Context, s *ClinicService) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO servicios_clinica (id, nombre, descripcion, tipo_servicio, precio, incluido_mutua, duracion_minutos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Name, s.Description, s.Category, s.Price,
		s.MutuaIncluded, s.DurationMinutes, s.CreatedAt)
	return err
}

func (r *clinicServiceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicService, error) {
	return scanClinicService(r.pool.QueryRow(ctx,
		`SELECT `+clinicServiceCols+` FROM servicios_clinica WHERE id = $1`, id))
}

func (r *clinicServiceRepoPG) List(ctx context.Context) ([]*ClinicService, error) {
	return r.list(ctx, `SELECT `+clinicServiceCols+` FROM servicios_clinica ORDER BY created_at ASC`)
}

func (r *clinicServiceRepoPG) ListMutua(ctx context.Context) ([]*ClinicService, error) {
	return r.list(ctx, `SELECT `+clinicServiceCols+` FROM servicios_clinica WHERE incluido_mutua ORDER BY created_at ASC`)
}

func (r *clinicServiceRepoPG) list(ctx context.Context, query string) ([]*ClinicService, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []*ClinicService{}
	for rows.Next() {
		s, err := scanClinicService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}
