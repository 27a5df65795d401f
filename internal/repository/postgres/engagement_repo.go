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

type engagementRepo struct {
	db *sqlx.DB
}

// NewEngagementRepo creates a new PostgreSQL-backed EngagementRepository.
func NewEngagementRepo(db *sqlx.DB) port.EngagementRepository {
	return &engagementRepo{db: db}
}

func (r *engagementRepo) Create(ctx context.Context, e *domain.Engagement) error {
	e.ID = uuid.New()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `INSERT INTO engagements (id, tenant_id, name, client_name, fiscal_year, status, lead_developer_id, team, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TenantID, e.Name, e.ClientName, e.FiscalYear, e.Status,
		e.LeadDeveloperID, e.Team, e.CreatedBy, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("engagementRepo.Create: %w", err)
	}
	return nil
}

func (r *engagementRepo) GetByID(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.Engagement, error) {
	var e domain.Engagement
	err := r.db.GetContext(ctx, &e,
		"SELECT * FROM engagements WHERE tenant_id = $1 AND id = $2", tenantID, engagementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEngagementNotFound
		}
		return nil, fmt.Errorf("engagementRepo.GetByID: %w", err)
	}
	return &e, nil
}

func (r *engagementRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM engagements WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("engagementRepo.ListByTenant count: %w", err)
	}

	var engagements []domain.Engagement
	err = r.db.SelectContext(ctx, &engagements,
		"SELECT * FROM engagements WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("engagementRepo.ListByTenant: %w", err)
	}
	return engagements, total, nil
}

func (r *engagementRepo) ListByMember(ctx context.Context, tenantID, userID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error) {
	// The team column is JSONB of role-bucketed id arrays; a member is anyone
	// appearing in any bucket or assigned as lead developer.
	const where = `tenant_id = $1 AND (lead_developer_id = $2 OR team::text LIKE '%' || $2 || '%')`

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM engagements WHERE "+where, tenantID, userID.String())
	if err != nil {
		return nil, 0, fmt.Errorf("engagementRepo.ListByMember count: %w", err)
	}

	var engagements []domain.Engagement
	err = r.db.SelectContext(ctx, &engagements,
		"SELECT * FROM engagements WHERE "+where+" ORDER BY created_at DESC LIMIT $3 OFFSET $4",
		tenantID, userID.String(), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("engagementRepo.ListByMember: %w", err)
	}
	return engagements, total, nil
}

func (r *engagementRepo) Update(ctx context.Context, e *domain.Engagement) error {
	e.UpdatedAt = time.Now().UTC()
	query := `UPDATE engagements SET name = $1, client_name = $2, fiscal_year = $3, status = $4, updated_at = $5
		WHERE tenant_id = $6 AND id = $7`
	result, err := r.db.ExecContext(ctx, query,
		e.Name, e.ClientName, e.FiscalYear, e.Status, e.UpdatedAt, e.TenantID, e.ID)
	if err != nil {
		return fmt.Errorf("engagementRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEngagementNotFound
	}
	return nil
}

func (r *engagementRepo) UpdateTeam(ctx context.Context, tenantID, engagementID uuid.UUID, team domain.TeamAssignments, leadDeveloperID *uuid.UUID) error {
	query := `UPDATE engagements SET team = $1, lead_developer_id = $2, updated_at = $3
		WHERE tenant_id = $4 AND id = $5`
	result, err := r.db.ExecContext(ctx, query,
		team, leadDeveloperID, time.Now().UTC(), tenantID, engagementID)
	if err != nil {
		return fmt.Errorf("engagementRepo.UpdateTeam: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEngagementNotFound
	}
	return nil
}

func (r *engagementRepo) Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM engagements WHERE tenant_id = $1 AND id = $2", tenantID, engagementID)
	if err != nil {
		return fmt.Errorf("engagementRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEngagementNotFound
	}
	return nil
}
