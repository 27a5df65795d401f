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

type commentRepo struct {
	db *sqlx.DB
}

// NewCommentRepo creates a new PostgreSQL-backed CommentRepository.
func NewCommentRepo(db *sqlx.DB) port.CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *domain.Comment) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()

	query := `INSERT INTO comments (id, tenant_id, engagement_id, section_id, field_id, parent_comment_id, author_id, addressed_to, content, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.TenantID, c.EngagementID, c.SectionID, c.FieldID, c.ParentCommentID,
		c.AuthorID, c.AddressedTo, c.Content, c.Resolved, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("commentRepo.Create: %w", err)
	}
	return nil
}

func (r *commentRepo) GetByID(ctx context.Context, tenantID, commentID uuid.UUID) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM comments WHERE tenant_id = $1 AND id = $2", tenantID, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("commentRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *commentRepo) ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.SelectContext(ctx, &comments,
		`SELECT * FROM comments
		WHERE tenant_id = $1 AND engagement_id = $2 AND section_id = $3
		ORDER BY created_at`,
		tenantID, engagementID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("commentRepo.ListBySection: %w", err)
	}
	return comments, nil
}

func (r *commentRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID, onlyUnresolved bool) ([]domain.Comment, error) {
	query := `SELECT * FROM comments WHERE tenant_id = $1 AND engagement_id = $2`
	if onlyUnresolved {
		query += " AND resolved = FALSE"
	}
	query += " ORDER BY created_at"

	var comments []domain.Comment
	err := r.db.SelectContext(ctx, &comments, query, tenantID, engagementID)
	if err != nil {
		return nil, fmt.Errorf("commentRepo.ListByEngagement: %w", err)
	}
	return comments, nil
}

func (r *commentRepo) SetResolved(ctx context.Context, tenantID, commentID uuid.UUID, resolved bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE comments SET resolved = $1 WHERE tenant_id = $2 AND id = $3",
		resolved, tenantID, commentID)
	if err != nil {
		return fmt.Errorf("commentRepo.SetResolved: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, tenantID, commentID uuid.UUID) error {
	// Replies go with the thread root.
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM comments WHERE tenant_id = $1 AND (id = $2 OR parent_comment_id = $2)",
		tenantID, commentID)
	if err != nil {
		return fmt.Errorf("commentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
