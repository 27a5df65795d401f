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

type reviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo creates a new PostgreSQL-backed ReviewRepository.
func NewReviewRepo(db *sqlx.DB) port.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, entry *domain.ReviewEntry) error {
	entry.ID = uuid.New()
	if entry.ReviewedAt.IsZero() {
		entry.ReviewedAt = time.Now().UTC()
	}

	// The log is append-only: a user reviewing the same section twice in the
	// same role records two rows.
	query := `INSERT INTO review_entries (id, tenant_id, engagement_id, section_id, role, user_id, user_name, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.TenantID, entry.EngagementID, entry.SectionID,
		entry.Role, entry.UserID, entry.UserName, entry.ReviewedAt)
	if err != nil {
		return fmt.Errorf("reviewRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewRepo) GetByID(ctx context.Context, tenantID uuid.UUID, entryID uuid.UUID) (*domain.ReviewEntry, error) {
	var entry domain.ReviewEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM review_entries WHERE tenant_id = $1 AND id = $2", tenantID, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("reviewRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *reviewRepo) Find(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, role domain.ReviewRole, userID uuid.UUID) (*domain.ReviewEntry, error) {
	var entry domain.ReviewEntry
	err := r.db.GetContext(ctx, &entry,
		`SELECT * FROM review_entries
		WHERE tenant_id = $1 AND engagement_id = $2 AND section_id = $3 AND role = $4 AND user_id = $5`,
		tenantID, engagementID, sectionID, role, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("reviewRepo.Find: %w", err)
	}
	return &entry, nil
}

func (r *reviewRepo) ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]domain.ReviewEntry, error) {
	var entries []domain.ReviewEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM review_entries
		WHERE tenant_id = $1 AND engagement_id = $2 AND section_id = $3
		ORDER BY reviewed_at`,
		tenantID, engagementID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.ListBySection: %w", err)
	}
	return entries, nil
}

func (r *reviewRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ReviewEntry, error) {
	var entries []domain.ReviewEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM review_entries
		WHERE tenant_id = $1 AND engagement_id = $2
		ORDER BY section_id, reviewed_at`,
		tenantID, engagementID)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.ListByEngagement: %w", err)
	}
	return entries, nil
}

func (r *reviewRepo) Delete(ctx context.Context, tenantID uuid.UUID, entryID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM review_entries WHERE tenant_id = $1 AND id = $2", tenantID, entryID)
	if err != nil {
		return fmt.Errorf("reviewRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
