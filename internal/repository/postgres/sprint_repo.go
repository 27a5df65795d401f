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

type sprintRepo struct {
	db *sqlx.DB
}

// NewSprintRepo creates a new PostgreSQL-backed SprintRepository.
func NewSprintRepo(db *sqlx.DB) port.SprintRepository {
	return &sprintRepo{db: db}
}

func (r *sprintRepo) Create(ctx context.Context, sprint *domain.Sprint) error {
	sprint.ID = uuid.New()
	now := time.Now().UTC()
	sprint.CreatedAt = now
	sprint.UpdatedAt = now

	query := `INSERT INTO sprints (id, tenant_id, engagement_id, name, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		sprint.ID, sprint.TenantID, sprint.EngagementID, sprint.Name,
		sprint.StartDate, sprint.EndDate, sprint.IsActive, sprint.CreatedAt, sprint.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sprintRepo.Create: %w", err)
	}
	return nil
}

func (r *sprintRepo) GetByID(ctx context.Context, tenantID, sprintID uuid.UUID) (*domain.Sprint, error) {
	var sprint domain.Sprint
	err := r.db.GetContext(ctx, &sprint,
		"SELECT * FROM sprints WHERE tenant_id = $1 AND id = $2", tenantID, sprintID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSprintNotFound
		}
		return nil, fmt.Errorf("sprintRepo.GetByID: %w", err)
	}
	return &sprint, nil
}

func (r *sprintRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Sprint, error) {
	var sprints []domain.Sprint
	err := r.db.SelectContext(ctx, &sprints,
		"SELECT * FROM sprints WHERE tenant_id = $1 ORDER BY start_date DESC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("sprintRepo.ListByTenant: %w", err)
	}
	return sprints, nil
}

func (r *sprintRepo) Update(ctx context.Context, sprint *domain.Sprint) error {
	sprint.UpdatedAt = time.Now().UTC()
	query := `UPDATE sprints SET name = $1, start_date = $2, end_date = $3, is_active = $4, updated_at = $5
		WHERE tenant_id = $6 AND id = $7`
	result, err := r.db.ExecContext(ctx, query,
		sprint.Name, sprint.StartDate, sprint.EndDate, sprint.IsActive,
		sprint.UpdatedAt, sprint.TenantID, sprint.ID)
	if err != nil {
		return fmt.Errorf("sprintRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSprintNotFound
	}
	return nil
}

func (r *sprintRepo) Delete(ctx context.Context, tenantID, sprintID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM sprints WHERE tenant_id = $1 AND id = $2", tenantID, sprintID)
	if err != nil {
		return fmt.Errorf("sprintRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSprintNotFound
	}
	return nil
}
