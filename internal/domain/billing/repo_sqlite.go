package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mutua/mutua/internal/platform/db"
)

type repoSQLite struct{ db *db.SQLiteDB }

func NewRepoSQLite(sq *db.SQLiteDB) Repository { return &repoSQLite{db: sq} }

func (r *repoSQLite) CreateWithLineItems(ctx context.Context, inv *Invoice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin invoice tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	_, err = tx.ExecContext(ctx, `
		INSERT INTO facturas (id, id_paciente, fecha_emision, monto_total, estado, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID.String(), inv.PatientID.String(), inv.IssueDate, inv.Total, inv.Status, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert factura: %w", err)
	}

	for _, item := range inv.LineItems {
		item.ID = uuid.New()
		item.InvoiceID = inv.ID
		item.CreatedAt = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO detalles_factura (id, id_factura, concepto, monto, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			item.ID.String(), item.InvoiceID.String(), item.Concept, item.Amount, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert detalle %q: %w", item.Concept, err)
		}
	}

	return tx.Commit()
}

func (r *repoSQLite) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, id_paciente, fecha_emision, monto_total, estado, created_at
		FROM facturas WHERE id_paciente = ? ORDER BY created_at ASC, rowid ASC`, patientID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*Invoice{}
	for rows.Next() {
		var inv Invoice
		var id, pid string
		if err := rows.Scan(&id, &pid, &inv.IssueDate, &inv.Total, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, err
		}
		if inv.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if inv.PatientID, err = uuid.Parse(pid); err != nil {
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

func (r *repoSQLite) attachLineItems(ctx context.Context, inv *Invoice) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, id_factura, concepto, monto, created_at
		FROM detalles_factura WHERE id_factura = ? ORDER BY created_at ASC, rowid ASC`, inv.ID.String())
	if err != nil {
		return err
	}
	defer rows.Close()

	inv.LineItems = []*LineItem{}
	for rows.Next() {
		var item LineItem
		var id, fid string
		if err := rows.Scan(&id, &fid, &item.Concept, &item.Amount, &item.CreatedAt); err != nil {
			return err
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return err
		}
		if item.InvoiceID, err = uuid.Parse(fid); err != nil {
			return err
		}
		inv.LineItems = append(inv.LineItems, &item)
	}
	return rows.Err()
}
