package authorization

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const authorizationCols = `id, id_paciente, id_tratamiento, fecha_solicitud, estado, comentarios, created_at`

func scanAuthorization(row pgx.Row) (*Authorization, error) {
	var a Authorization
	var comments *string
	err := row.Scan(&a.ID, &a.PatientID, &a.TreatmentID, &a.RequestDate, &a.Status, &comments, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if comments != nil {
		a.Comments = *comments
	}
	return &a, nil
}

// nullableComments stores empty comments as NULL so rows look the same
// regardless of which engine or seed path wrote them.
func nullableComments(comments string) *string {
	if comments == "" {
		return nil
	}
	return &comments
}

func (r *repoPG) Create(ctx context.Context, a *Authorization) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO autorizaciones (id, id_paciente, id_tratamiento, fecha_solicitud, estado, comentarios, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.PatientID, a.TreatmentID, a.RequestDate, a.Status, nullableComments(a.Comments), a.CreatedAt)
	return err
}

func (r *repoPG) List(ctx context.Context) ([]*Authorization, error) {
	return r.list(ctx, `SELECT `+authorizationCols+` FROM autorizaciones ORDER BY created_at ASC`)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Authorization, error) {
	return r.list(ctx,
		`SELECT `+authorizationCols+` FROM autorizaciones WHERE id_paciente = $1 ORDER BY created_at ASC`,
		patientID)
}

func (r *repoPG) list(ctx context.Context, query string, args ...interface{}) ([]*Authorization, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	auths := []*Authorization{}
	for rows.Next() {
		a, err := scanAuthorization(rows)
		if err != nil {
			return nil, err
		}
		auths = append(auths, a)
	}
	return auths, rows.Err()
}
