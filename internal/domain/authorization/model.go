// Package authorization implements the mutua's prior-authorization workflow
// for catalog treatments that require it.
package authorization

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/pkg/dateonly"
)

var ErrNotFound = errors.New("authorization not found")

// Authorization states. Pending and rejected only ever enter the system
// through seeding; the request workflow approves every authorization it
// creates (see Service.policy).
const (
	StatusPending  = "pendiente"
	StatusApproved = "aprobada"
	StatusRejected = "rechazada"
)

// Authorization maps to the autorizaciones table.
type Authorization struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	PatientID   uuid.UUID     `db:"id_paciente" json:"id_paciente"`
	TreatmentID uuid.UUID     `db:"id_tratamiento" json:"id_tratamiento"`
	RequestDate dateonly.Date `db:"fecha_solicitud" json:"fecha_solicitud"`
	Status      string        `db:"estado" json:"estado"`
	Comments    string        `db:"comentarios" json:"comentarios,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}
