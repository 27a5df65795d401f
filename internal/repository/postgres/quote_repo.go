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

type quoteRepo struct {
	db *sqlx.DB
}

// NewQuoteRepo creates a new PostgreSQL-backed QuoteRepository.
func NewQuoteRepo(db *sqlx.DB) port.QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	q.ID = uuid.New()
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	query := `INSERT INTO quotes (id, tenant_id, engagement_id, number, status, lines, subtotal, tax_rate, total, valid_until, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.TenantID, q.EngagementID, q.Number, q.Status, q.Lines,
		q.Subtotal, q.TaxRate, q.Total, q.ValidUntil, q.CreatedBy, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quoteRepo.Create: %w", err)
	}
	return nil
}

func (r *quoteRepo) GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*domain.Quote, error) {
	var q domain.Quote
	err := r.db.GetContext(ctx, &q,
		"SELECT * FROM quotes WHERE tenant_id = $1 AND id = $2", tenantID, quoteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("quoteRepo.GetByID: %w", err)
	}
	return &q, nil
}

func (r *quoteRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.QuoteStatus, offset, limit int) ([]domain.Quote, int, error) {
	where := "tenant_id = $1"
	args := []interface{}{tenantID}
	if status != nil {
		args = append(args, *status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM quotes WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("quoteRepo.ListByTenant count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT * FROM quotes WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var quotes []domain.Quote
	if err := r.db.SelectContext(ctx, &quotes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("quoteRepo.ListByTenant: %w", err)
	}
	return quotes, total, nil
}

func (r *quoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	q.UpdatedAt = time.Now().UTC()
	query := `UPDATE quotes SET number = $1, status = $2, lines = $3, subtotal = $4, tax_rate = $5, total = $6, valid_until = $7, updated_at = $8
		WHERE tenant_id = $9 AND id = $10`
	result, err := r.db.ExecContext(ctx, query,
		q.Number, q.Status, q.Lines, q.Subtotal, q.TaxRate, q.Total,
		q.ValidUntil, q.UpdatedAt, q.TenantID, q.ID)
	if err != nil {
		return fmt.Errorf("quoteRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status domain.QuoteStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE quotes SET status = $1, updated_at = $2 WHERE tenant_id = $3 AND id = $4",
		status, time.Now().UTC(), tenantID, quoteID)
	if err != nil {
		return fmt.Errorf("quoteRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) Delete(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM quotes WHERE tenant_id = $1 AND id = $2", tenantID, quoteID)
	if err != nil {
		return fmt.Errorf("quoteRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}
