// Package patient holds the mutua's patient registry: reference records
// keyed by affiliate number, listed and verified over the API.
package patient

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/pkg/dateonly"
)

var (
	ErrNotFound  = errors.New("patient not found")
	ErrDuplicate = errors.New("affiliate number already registered")
)

// Patient maps to the pacientes table. JSON field names match the Spanish
// wire contract of the system this replaces.
type Patient struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	Name            string        `db:"nombre" json:"nombre"`
	Surname         string        `db:"apellido" json:"apellido"`
	BirthDate       dateonly.Date `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	AffiliateNumber string        `db:"numero_afiliado" json:"numero_afiliado"`
	MutuaMember     bool          `db:"pertenece_mutua" json:"pertenece_mutua"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

// FullName is the display form used in reports.
func (p *Patient) FullName() string {
	return p.Name + " " + p.Surname
}
