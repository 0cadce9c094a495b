package patient

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
)

type repoSQLite struct{ db *db.SQLiteDB }

func NewRepoSQLite(sq *db.SQLiteDB) Repository { return &repoSQLite{db: sq} }

type sqliteRow interface {
	Scan(dest ...interface{}) error
}

func scanPatientSQLite(row sqliteRow) (*Patient, error) {
	var p Patient
	var id string
	err := row.Scan(&id, &p.Name, &p.Surname, &p.BirthDate, &p.AffiliateNumber, &p.MutuaMember, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const patientColsSQLite = `id, nombre, apellido, fecha_nacimiento, numero_afiliado, pertenece_mutua, created_at`

func (r *repoSQLite) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pacientes (id, nombre, apellido, fecha_nacimiento, numero_afiliado, pertenece_mutua, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.Surname, p.BirthDate, p.AffiliateNumber, p.MutuaMember, p.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

func (r *repoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatientSQLite(r.db.QueryRowContext(ctx,
		`SELECT `+patientColsSQLite+` FROM pacientes WHERE id = ?`, id.String()))
}

func (r *repoSQLite) GetByAffiliateNumber(ctx context.Context, affiliateNumber string) (*Patient, error) {
	return scanPatientSQLite(r.db.QueryRowContext(ctx,
		`SELECT `+patientColsSQLite+` FROM pacientes WHERE numero_afiliado = ?`, affiliateNumber))
}

func (r *repoSQLite) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+patientColsSQLite+` FROM pacientes ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := []*Patient{}
	for rows.Next() {
		p, err := scanPatientSQLite(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}
