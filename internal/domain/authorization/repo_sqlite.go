package authorization

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
)

type repoSQLite struct{ db *db.SQLiteDB }

func NewRepoSQLite(sq *db.SQLiteDB) Repository { return &repoSQLite{db: sq} }

type sqliteRow interface {
	Scan(dest ...interface{}) error
}

func scanAuthorizationSQLite(row sqliteRow) (*Authorization, error) {
	var a Authorization
	var id, patientID, treatmentID string
	var comments sql.NullString
	err := row.Scan(&id, &patientID, &treatmentID, &a.RequestDate, &a.Status, &comments, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if a.PatientID, err = uuid.Parse(patientID); err != nil {
		return nil, err
	}
	if a.TreatmentID, err = uuid.Parse(treatmentID); err != nil {
		return nil, err
	}
	a.Comments = comments.String
	return &a, nil
}

func (r *repoSQLite) Create(ctx context.Context, a *Authorization) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO autorizaciones (id, id_paciente, id_tratamiento, fecha_solicitud, estado, comentarios, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.PatientID.String(), a.TreatmentID.String(),
		a.RequestDate, a.Status, nullableComments(a.Comments), a.CreatedAt)
	return err
}

func (r *repoSQLite) List(ctx context.Context) ([]*Authorization, error) {
	return r.list(ctx, `SELECT `+authorizationCols+` FROM autorizaciones ORDER BY created_at ASC, rowid ASC`)
}

func (r *repoSQLite) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Authorization, error) {
	return r.list(ctx,
		`SELECT `+authorizationCols+` FROM autorizaciones WHERE id_paciente = ? ORDER BY created_at ASC, rowid ASC`,
		patientID.String())
}

func (r *repoSQLite) list(ctx context.Context, query string, args ...interface{}) ([]*Authorization, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	auths := []*Authorization{}
	for rows.Next() {
		a, err := scanAuthorizationSQLite(rows)
		if err != nil {
			return nil, err
		}
		auths = append(auths, a)
	}
	return auths, rows.Err()
}
