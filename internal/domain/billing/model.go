// Package billing holds patient invoices and their line items. An invoice
// and its detalles are always written in a single transaction.
package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/pkg/dateonly"
)

var (
	ErrNotFound       = errors.New("invoice not found")
	ErrUnknownPatient = errors.New("unknown patient")
)

// Invoice states.
const (
	StatusPending = "pendiente"
	StatusPaid    = "pagada"
	StatusOverdue = "vencida"
)

// Invoice maps to the facturas table; LineItems carries the detalles that
// belong to it.
type Invoice struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	PatientID uuid.UUID     `db:"id_paciente" json:"id_paciente"`
	IssueDate dateonly.Date `db:"fecha_emision" json:"fecha_emision"`
	Total     float64       `db:"monto_total" json:"monto_total"`
	Status    string        `db:"estado" json:"estado"`
	LineItems []*LineItem   `json:"detalles"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// LineItem maps to the detalles_factura table.
type LineItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	InvoiceID uuid.UUID `db:"id_factura" json:"id_factura"`
	Concept   string    `db:"concepto" json:"concepto"`
	Amount    float64   `db:"monto" json:"monto"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func validStatus(s string) bool {
	return s == StatusPending || s == StatusPaid || s == StatusOverdue
}
