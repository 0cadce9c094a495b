// Package catalog holds the clinic's priced offerings: treatments the mutua
// may need to authorize, and general clinic services.
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrServiceNotFound   = errors.New("clinic service not found")
)

// Treatment maps to the tratamientos table.
type Treatment struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	Name                  string    `db:"servicio" json:"servicio"`
	Description           string    `db:"descripcion" json:"descripcion"`
	Category              string    `db:"tipo_servicio" json:"tipo_servicio"`
	Price                 float64   `db:"precio" json:"precio"`
	MutuaIncluded         bool      `db:"incluido_mutua" json:"incluido_mutua"`
	DurationMinutes       int       `db:"duracion_minutos" json:"duracion_minutos"`
	RequiresAuthorization bool      `db:"requiere_autorizacion" json:"requiere_autorizacion"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

// ClinicService maps to the servicios_clinica table. Unlike treatments these
// never gate on an authorization.
type ClinicService struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"nombre" json:"nombre"`
	Description     string    `db:"descripcion" json:"descripcion"`
	Category        string    `db:"tipo_servicio" json:"tipo_servicio"`
	Price           float64   `db:"precio" json:"precio"`
	MutuaIncluded   bool      `db:"incluido_mutua" json:"incluido_mutua"`
	DurationMinutes int       `db:"duracion_minutos" json:"duracion_minutos"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
