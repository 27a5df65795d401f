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

type sectionRepo struct {
	db *sqlx.DB
}

// NewSectionRepo creates a new PostgreSQL-backed SectionRepository.
func NewSectionRepo(db *sqlx.DB) port.SectionRepository {
	return &sectionRepo{db: db}
}

const sectionInsert = `INSERT INTO sections (id, tenant_id, engagement_id, section_id, title, sign_off_level, signed_off, signed_off_by, signed_off_at, position, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (r *sectionRepo) Create(ctx context.Context, s *domain.Section) error {
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, sectionInsert,
		s.ID, s.TenantID, s.EngagementID, s.SectionID, s.Title, s.SignOffLevel,
		s.SignedOff, s.SignedOffBy, s.SignedOffAt, s.Position, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sectionRepo.Create: %w", err)
	}
	return nil
}

func (r *sectionRepo) BatchCreate(ctx context.Context, sections []domain.Section) error {
	if len(sections) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sectionRepo.BatchCreate begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i := range sections {
		s := &sections[i]
		s.ID = uuid.New()
		s.CreatedAt = now
		s.UpdatedAt = now
		_, err := tx.ExecContext(ctx, sectionInsert,
			s.ID, s.TenantID, s.EngagementID, s.SectionID, s.Title, s.SignOffLevel,
			s.SignedOff, s.SignedOffBy, s.SignedOffAt, s.Position, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("sectionRepo.BatchCreate: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sectionRepo.BatchCreate commit: %w", err)
	}
	return nil
}

func (r *sectionRepo) Get(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) (*domain.Section, error) {
	var s domain.Section
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM sections WHERE tenant_id = $1 AND engagement_id = $2 AND section_id = $3",
		tenantID, engagementID, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, fmt.Errorf("sectionRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *sectionRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.Section, error) {
	var sections []domain.Section
	err := r.db.SelectContext(ctx, &sections,
		"SELECT * FROM sections WHERE tenant_id = $1 AND engagement_id = $2 ORDER BY position, section_id",
		tenantID, engagementID)
	if err != nil {
		return nil, fmt.Errorf("sectionRepo.ListByEngagement: %w", err)
	}
	return sections, nil
}

func (r *sectionRepo) Update(ctx context.Context, s *domain.Section) error {
	s.UpdatedAt = time.Now().UTC()
	query := `UPDATE sections SET title = $1, sign_off_level = $2, position = $3, updated_at = $4
		WHERE tenant_id = $5 AND engagement_id = $6 AND section_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		s.Title, s.SignOffLevel, s.Position, s.UpdatedAt, s.TenantID, s.EngagementID, s.SectionID)
	if err != nil {
		return fmt.Errorf("sectionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}

func (r *sectionRepo) SetSignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, level domain.SignOffLevel, signedOff bool, byUserID *uuid.UUID) error {
	var signedAt *time.Time
	if signedOff {
		now := time.Now().UTC()
		signedAt = &now
	}
	query := `UPDATE sections SET sign_off_level = $1, signed_off = $2, signed_off_by = $3, signed_off_at = $4, updated_at = $5
		WHERE tenant_id = $6 AND engagement_id = $7 AND section_id = $8`
	result, err := r.db.ExecContext(ctx, query,
		level, signedOff, byUserID, signedAt, time.Now().UTC(), tenantID, engagementID, sectionID)
	if err != nil {
		return fmt.Errorf("sectionRepo.SetSignOff: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}

func (r *sectionRepo) Delete(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM sections WHERE tenant_id = $1 AND engagement_id = $2 AND section_id = $3",
		tenantID, engagementID, sectionID)
	if err != nil {
		return fmt.Errorf("sectionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}
