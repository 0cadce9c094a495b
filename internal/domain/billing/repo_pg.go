package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) CreateWithLineItems(ctx context.Context, inv *Invoice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin invoice tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	_, err = tx.Exec(ctx, `
		INSERT INTO facturas (id, id_paciente, fecha_emision, monto_total, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.PatientID, inv.IssueDate, inv.Total, inv.Status, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert factura: %w", err)
	}

	for _, item := range inv.LineItems {
		item.ID = uuid.New()
		item.InvoiceID = inv.ID
		item.CreatedAt = now
		_, err = tx.Exec(ctx, `
			INSERT INTO detalles_factura (id, id_factura, concepto, monto, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.InvoiceID, item.Concept, item.Amount, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert detalle %q: %w", item.Concept, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, id_paciente, fecha_emision, monto_total, estado, created_at
		FROM facturas WHERE id_paciente = $1 ORDER BY created_at ASC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*Invoice{}
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.PatientID, &inv.IssueDate, &inv.Total, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		if err := r.attachLineItems(ctx, inv); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

func (r *repoPG) attachLineItems(ctx context.Context, inv *Invoice) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, id_factura, concepto, monto, created_at
		FROM detalles_factura WHERE id_factura = $1 ORDER BY created_at ASC`, inv.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	inv.LineItems = []*LineItem{}
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Concept, &item.Amount, &item.CreatedAt); err != nil {
			return err
		}
		inv.LineItems = append(inv.LineItems, &item)
	}
	return rows.Err()
}
