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

type issueRepo struct {
	db *sqlx.DB
}

// NewIssueRepo creates a new PostgreSQL-backed IssueRepository.
func NewIssueRepo(db *sqlx.DB) port.IssueRepository {
	return &issueRepo{db: db}
}

func (r *issueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	issue.ID = uuid.New()
	now := time.Now().UTC()
	issue.CreatedAt = now
	issue.UpdatedAt = now

	query := `INSERT INTO issues (id, tenant_id, engagement_id, sprint_id, title, description, status, priority, assignee_id, due_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		issue.ID, issue.TenantID, issue.EngagementID, issue.SprintID, issue.Title,
		issue.Description, issue.Status, issue.Priority, issue.AssigneeID,
		issue.DueDate, issue.CreatedBy, issue.CreatedAt, issue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("issueRepo.Create: %w", err)
	}
	return nil
}

func (r *issueRepo) GetByID(ctx context.Context, tenantID, issueID uuid.UUID) (*domain.Issue, error) {
	var issue domain.Issue
	err := r.db.GetContext(ctx, &issue,
		"SELECT * FROM issues WHERE tenant_id = $1 AND id = $2", tenantID, issueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("issueRepo.GetByID: %w", err)
	}
	return &issue, nil
}

func (r *issueRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.IssueStatus, sprintID *uuid.UUID, offset, limit int) ([]domain.Issue, int, error) {
	where := "tenant_id = $1"
	args := []interface{}{tenantID}
	if status != nil {
		args = append(args, *status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if sprintID != nil {
		args = append(args, *sprintID)
		where += fmt.Sprintf(" AND sprint_id = $%d", len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM issues WHERE "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("issueRepo.ListByTenant count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT * FROM issues WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var issues []domain.Issue
	if err := r.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, 0, fmt.Errorf("issueRepo.ListByTenant: %w", err)
	}
	return issues, total, nil
}

func (r *issueRepo) Update(ctx context.Context, issue *domain.Issue) error {
	issue.UpdatedAt = time.Now().UTC()
	query := `UPDATE issues SET title = $1, description = $2, status = $3, priority = $4, assignee_id = $5, due_date = $6, updated_at = $7
		WHERE tenant_id = $8 AND id = $9`
	result, err := r.db.ExecContext(ctx, query,
		issue.Title, issue.Description, issue.Status, issue.Priority,
		issue.AssigneeID, issue.DueDate, issue.UpdatedAt, issue.TenantID, issue.ID)
	if err != nil {
		return fmt.Errorf("issueRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *issueRepo) UpdateStatus(ctx context.Context, tenantID, issueID uuid.UUID, status domain.IssueStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE issues SET status = $1, updated_at = $2 WHERE tenant_id = $3 AND id = $4",
		status, time.Now().UTC(), tenantID, issueID)
	if err != nil {
		return fmt.Errorf("issueRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *issueRepo) AssignSprint(ctx context.Context, tenantID, issueID uuid.UUID, sprintID *uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE issues SET sprint_id = $1, updated_at = $2 WHERE tenant_id = $3 AND id = $4",
		sprintID, time.Now().UTC(), tenantID, issueID)
	if err != nil {
		return fmt.Errorf("issueRepo.AssignSprint: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *issueRepo) Delete(ctx context.Context, tenantID, issueID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM issues WHERE tenant_id = $1 AND id = $2", tenantID, issueID)
	if err != nil {
		return fmt.Errorf("issueRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}
