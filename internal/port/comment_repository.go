package port

import (
	"context"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
)

// CommentRepository defines the contract for section-comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, tenantID, commentID uuid.UUID) (*domain.Comment, error)
	ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]domain.Comment, error)
	ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID, onlyUnresolved bool) ([]domain.Comment, error)
	SetResolved(ctx context.Context, tenantID, commentID uuid.UUID, resolved bool) error
	Delete(ctx context.Context, tenantID, commentID uuid.UUID) error
}

// IssueRepository defines the contract for issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, tenantID, issueID uuid.UUID) (*domain.Issue, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.IssueStatus, sprintID *uuid.UUID, offset, limit int) ([]domain.Issue, int, error)
	Update(ctx context.Context, issue *domain.Issue) error
	UpdateStatus(ctx context.Context, tenantID, issueID uuid.UUID, status domain.IssueStatus) error
	AssignSprint(ctx context.Context, tenantID, issueID uuid.UUID, sprintID *uuid.UUID) error
	Delete(ctx context.Context, tenantID, issueID uuid.UUID) error
}

// SprintRepository defines the contract for sprint persistence.
type SprintRepository interface {
	Create(ctx context.Context, sprint *domain.Sprint) error
	GetByID(ctx context.Context, tenantID, sprintID uuid.UUID) (*domain.Sprint, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Sprint, error)
	Update(ctx context.Context, sprint *domain.Sprint) error
	Delete(ctx context.Context, tenantID, sprintID uuid.UUID) error
}
