package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (id, tenant_id, engagement_id, number, status, lines, subtotal, tax_rate, total, issue_date, due_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.TenantID, inv.EngagementID, inv.Number, inv.Status, inv.Lines,
		inv.Subtotal, inv.TaxRate, inv.Total, inv.IssueDate, inv.DueDate,
		inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE tenant_id = $1 AND id = $2", tenantID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error) {
	where := "tenant_id = $1"
	args := []interface{}{tenantID}
	if status != nil {
		args = append(args, *status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT * FROM invoices WHERE %s ORDER BY issue_date DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	query := `UPDATE invoices SET number = $1, status = $2, lines = $3, subtotal = $4, tax_rate = $5, total = $6, issue_date = $7, due_date = $8, updated_at = $9
		WHERE tenant_id = $10 AND id = $11`
	result, err := r.db.ExecContext(ctx, query,
		inv.Number, inv.Status, inv.Lines, inv.Subtotal, inv.TaxRate, inv.Total,
		inv.IssueDate, inv.DueDate, inv.UpdatedAt, inv.TenantID, inv.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE tenant_id = $3 AND id = $4",
		status, time.Now().UTC(), tenantID, invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = $2 WHERE status = $3 AND due_date < $4",
		domain.InvoiceStatusOverdue, time.Now().UTC(), domain.InvoiceStatusSent, asOf)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkOverdue: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *invoiceRepo) Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE tenant_id = $1 AND id = $2", tenantID, invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
