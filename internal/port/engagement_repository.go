package port

import (
	"context"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
)

// EngagementRepository defines the contract for engagement persistence.
type EngagementRepository interface {
	Create(ctx context.Context, e *domain.Engagement) error
	GetByID(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.Engagement, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error)
	ListByMember(ctx context.Context, tenantID, userID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error)
	Update(ctx context.Context, e *domain.Engagement) error
	UpdateTeam(ctx context.Context, tenantID, engagementID uuid.UUID, team domain.TeamAssignments, leadDeveloperID *uuid.UUID) error
	Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error
}

// SectionRepository defines the contract for engagement-section persistence.
// Sections are identified within an engagement by their stable string code.
type SectionRepository interface {
	Create(ctx context.Context, s *domain.Section) error
	BatchCreate(ctx context.Context, sections []domain.Section) error
	Get(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) (*domain.Section, error)
	ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.Section, error)
	Update(ctx context.Context, s *domain.Section) error
	SetSignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, level domain.SignOffLevel, signedOff bool, byUserID *uuid.UUID) error
	Delete(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) error
}

// ReviewRepository defines the contract for the append-only review log.
// One row per review entry; deleting a row is an unreview.
type ReviewRepository interface {
	Create(ctx context.Context, entry *domain.ReviewEntry) error
	GetByID(ctx context.Context, tenantID uuid.UUID, entryID uuid.UUID) (*domain.ReviewEntry, error)
	Find(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, role domain.ReviewRole, userID uuid.UUID) (*domain.ReviewEntry, error)
	ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]domain.ReviewEntry, error)
	ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ReviewEntry, error)
	Delete(ctx context.Context, tenantID uuid.UUID, entryID uuid.UUID) error
}
