package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mutua/mutua/pkg/dateonly"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Create(ctx context.Context, u *UsedService) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO servicios_utilizados (id, id_paciente, descripcion, fecha, costo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.PatientID, u.Description, u.Date, u.Cost, u.CreatedAt)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, from, to *dateonly.Date) ([]*UsedService, error) {
	query := `SELECT id, id_paciente, descripcion, fecha, costo, created_at
		FROM servicios_utilizados WHERE id_paciente = $1`
	args := []interface{}{patientID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}
	query += " ORDER BY fecha ASC, created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []*UsedService{}
	for rows.Next() {
		var u UsedService
		if err := rows.Scan(&u.ID, &u.PatientID, &u.Description, &u.Date, &u.Cost, &u.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, &u)
	}
	return services, rows.Err()
}
