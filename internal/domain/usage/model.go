// Package usage tracks services a patient actually consumed and produces
// the per-patient usage report the mutua reconciles against.
package usage

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/pkg/dateonly"
)

var ErrUnknownPatient = errors.New("unknown patient")

// UsedService maps to the servicios_utilizados table.
type UsedService struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	PatientID   uuid.UUID     `db:"id_paciente" json:"id_paciente"`
	Description string        `db:"descripcion" json:"descripcion"`
	Date        dateonly.Date `db:"fecha" json:"fecha"`
	Cost        float64       `db:"costo" json:"costo"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// Period bounds a report. Open ends render as "Inicio" and "Actualidad".
type Period struct {
	From string `json:"desde"`
	To   string `json:"hasta"`
}

// Report is the usage summary returned by /servicios/informe.
type Report struct {
	PatientName     string         `json:"paciente"`
	AffiliateNumber string         `json:"numero_afiliado"`
	Period          Period         `json:"periodo"`
	Services        []*UsedService `json:"servicios"`
	Total           float64        `json:"total"`
}
