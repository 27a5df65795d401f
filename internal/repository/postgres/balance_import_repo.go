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

type balanceImportRepo struct {
	db *sqlx.DB
}

// NewBalanceImportRepo creates a new PostgreSQL-backed BalanceImportRepository.
func NewBalanceImportRepo(db *sqlx.DB) port.BalanceImportRepository {
	return &balanceImportRepo{db: db}
}

func (r *balanceImportRepo) Create(ctx context.Context, imp *domain.BalanceImport) error {
	imp.ID = uuid.New()
	now := time.Now().UTC()
	imp.CreatedAt = now
	imp.UpdatedAt = now
	imp.Status = domain.ImportStatusQueued

	query := `INSERT INTO balance_imports (id, tenant_id, engagement_id, file_id, status, attempts, error_message, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		imp.ID, imp.TenantID, imp.EngagementID, imp.FileID, imp.Status,
		imp.Attempts, imp.ErrorMessage, imp.CreatedBy, imp.CreatedAt, imp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("balanceImportRepo.Create: %w", err)
	}
	return nil
}

func (r *balanceImportRepo) GetByID(ctx context.Context, tenantID, importID uuid.UUID) (*domain.BalanceImport, error) {
	var imp domain.BalanceImport
	err := r.db.GetContext(ctx, &imp,
		"SELECT * FROM balance_imports WHERE tenant_id = $1 AND id = $2", tenantID, importID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrImportNotFound
		}
		return nil, fmt.Errorf("balanceImportRepo.GetByID: %w", err)
	}
	return &imp, nil
}

func (r *balanceImportRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID, offset, limit int) ([]domain.BalanceImport, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM balance_imports WHERE tenant_id = $1 AND engagement_id = $2",
		tenantID, engagementID)
	if err != nil {
		return nil, 0, fmt.Errorf("balanceImportRepo.ListByEngagement count: %w", err)
	}

	var imports []domain.BalanceImport
	err = r.db.SelectContext(ctx, &imports,
		`SELECT * FROM balance_imports WHERE tenant_id = $1 AND engagement_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, engagementID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("balanceImportRepo.ListByEngagement: %w", err)
	}
	return imports, total, nil
}

func (r *balanceImportRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.BalanceImport, error) {
	// SKIP LOCKED lets multiple workers poll the queue without claiming the
	// same import twice.
	query := `UPDATE balance_imports SET status = $1, attempts = attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM balance_imports
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var imports []domain.BalanceImport
	err := r.db.SelectContext(ctx, &imports, query,
		domain.ImportStatusProcessing, time.Now().UTC(), domain.ImportStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("balanceImportRepo.ClaimQueued: %w", err)
	}
	return imports, nil
}

func (r *balanceImportRepo) MarkDone(ctx context.Context, importID uuid.UUID) error {
	return r.setStatus(ctx, importID, domain.ImportStatusDone, "")
}

func (r *balanceImportRepo) MarkError(ctx context.Context, importID uuid.UUID, message string) error {
	return r.setStatus(ctx, importID, domain.ImportStatusError, message)
}

func (r *balanceImportRepo) Requeue(ctx context.Context, importID uuid.UUID) error {
	return r.setStatus(ctx, importID, domain.ImportStatusQueued, "")
}

func (r *balanceImportRepo) setStatus(ctx context.Context, importID uuid.UUID, status domain.ImportStatus, message string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE balance_imports SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4",
		status, message, time.Now().UTC(), importID)
	if err != nil {
		return fmt.Errorf("balanceImportRepo.setStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrImportNotFound
	}
	return nil
}
