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

type balanceRepo struct {
	db *sqlx.DB
}

// NewBalanceRepo creates a new PostgreSQL-backed BalanceRepository.
func NewBalanceRepo(db *sqlx.DB) port.BalanceRepository {
	return &balanceRepo{db: db}
}

func (r *balanceRepo) Upsert(ctx context.Context, set *domain.BalanceSet) error {
	set.UpdatedAt = time.Now().UTC()

	// Single statement so readers never see a half-written pair of periods.
	query := `INSERT INTO balances (engagement_id, tenant_id, status, balance_n, balance_n1, error_message, source_path, parsed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (engagement_id) DO UPDATE SET
			status = EXCLUDED.status,
			balance_n = EXCLUDED.balance_n,
			balance_n1 = EXCLUDED.balance_n1,
			error_message = EXCLUDED.error_message,
			source_path = EXCLUDED.source_path,
			parsed_at = EXCLUDED.parsed_at,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		set.EngagementID, set.TenantID, set.Status, set.BalanceN, set.BalanceN1,
		set.ErrorMessage, set.SourcePath, set.ParsedAt, set.UpdatedAt)
	if err != nil {
		return fmt.Errorf("balanceRepo.Upsert: %w", err)
	}
	return nil
}

func (r *balanceRepo) GetByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.BalanceSet, error) {
	var set domain.BalanceSet
	err := r.db.GetContext(ctx, &set,
		"SELECT * FROM balances WHERE tenant_id = $1 AND engagement_id = $2", tenantID, engagementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBalancesNotFound
		}
		return nil, fmt.Errorf("balanceRepo.GetByEngagement: %w", err)
	}
	return &set, nil
}

func (r *balanceRepo) Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM balances WHERE tenant_id = $1 AND engagement_id = $2", tenantID, engagementID)
	if err != nil {
		return fmt.Errorf("balanceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBalancesNotFound
	}
	return nil
}
