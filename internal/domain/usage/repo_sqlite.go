package usage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
	"github.com/mutua/mutua/pkg/dateonly"
)

type repoSQLite struct{ db *db.SQLiteDB }

func NewRepoSQLite(sq *db.SQLiteDB) Repository { return &repoSQLite{db: sq} }

func (r *repoSQLite) Create(ctx context.Context, u *UsedService) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO servicios_utilizados (id, id_paciente, descripcion, fecha, costo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.PatientID.String(), u.Description, u.Date, u.Cost, u.CreatedAt)
	return err
}

func (r *repoSQLite) ListByPatient(ctx context.Context, patientID uuid.UUID, from, to *dateonly.Date) ([]*UsedService, error) {
	// ISO dates compare correctly as text.
	query := `SELECT id, id_paciente, descripcion, fecha, costo, created_at
		FROM servicios_utilizados WHERE id_paciente = ?`
	args := []interface{}{patientID.String()}
	if from != nil {
		query += " AND fecha >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND fecha <= ?"
		args = append(args, *to)
	}
	query += " ORDER BY fecha ASC, created_at ASC, rowid ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []*UsedService{}
	for rows.Next() {
		var u UsedService
		var id, pid string
		if err := rows.Scan(&id, &pid, &u.Description, &u.Date, &u.Cost, &u.CreatedAt); err != nil {
			return nil, err
		}
		if u.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if u.PatientID, err = uuid.Parse(pid); err != nil {
			return nil, err
		}
		services = append(services, &u)
	}
	return services, rows.Err()
}
