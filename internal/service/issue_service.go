package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// CreateIssueInput is the DTO for creating an issue.
type CreateIssueInput struct {
	EngagementID uuid.UUID            `json:"engagement_id" binding:"required"`
	Title        string               `json:"title" binding:"required"`
	Description  string               `json:"description"`
	Priority     domain.IssuePriority `json:"priority"`
	AssigneeID   *uuid.UUID           `json:"assignee_id"`
	DueDate      *time.Time           `json:"due_date"`
	SprintID     *uuid.UUID           `json:"sprint_id"`
}

// UpdateIssueInput is the DTO for updating an issue.
type UpdateIssueInput struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Priority    *domain.IssuePriority `json:"priority"`
	AssigneeID  *uuid.UUID            `json:"assignee_id"`
	DueDate     *time.Time            `json:"due_date"`
}

// CreateSprintInput is the DTO for creating a sprint.
type CreateSprintInput struct {
	EngagementID uuid.UUID `json:"engagement_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
}

// BoardColumn is one column of the issue board.
type BoardColumn struct {
	Status domain.IssueStatus `json:"status"`
	Issues []domain.Issue     `json:"issues"`
}

// IssueService defines the issue-board contract.
type IssueService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateIssueInput) (*domain.Issue, error)
	GetByID(ctx context.Context, tenantID, issueID uuid.UUID) (*domain.Issue, error)
	List(ctx context.Context, tenantID uuid.UUID, status *domain.IssueStatus, sprintID *uuid.UUID, offset, limit int) ([]domain.Issue, int, error)
	Board(ctx context.Context, tenantID uuid.UUID, sprintID *uuid.UUID) ([]BoardColumn, error)
	Update(ctx context.Context, tenantID, issueID uuid.UUID, input UpdateIssueInput) (*domain.Issue, error)
	Move(ctx context.Context, tenantID, issueID uuid.UUID, status domain.IssueStatus) error
	AssignSprint(ctx context.Context, tenantID, issueID uuid.UUID, sprintID *uuid.UUID) error
	Delete(ctx context.Context, tenantID, issueID uuid.UUID) error

	CreateSprint(ctx context.Context, tenantID uuid.UUID, input CreateSprintInput) (*domain.Sprint, error)
	ListSprints(ctx context.Context, tenantID uuid.UUID) ([]domain.Sprint, error)
	CloseSprint(ctx context.Context, tenantID, sprintID uuid.UUID) (*domain.Sprint, error)
	DeleteSprint(ctx context.Context, tenantID, sprintID uuid.UUID) error
}

type issueService struct {
	issues  port.IssueRepository
	sprints port.SprintRepository
}

// NewIssueService creates a new IssueService implementation.
func NewIssueService(issues port.IssueRepository, sprints port.SprintRepository) IssueService {
	return &issueService{issues: issues, sprints: sprints}
}

func (s *issueService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateIssueInput) (*domain.Issue, error) {
	if input.SprintID != nil {
		if _, err := s.sprints.GetByID(ctx, tenantID, *input.SprintID); err != nil {
			return nil, err
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.IssuePriorityMedium
	}

	issue := &domain.Issue{
		TenantID:     tenantID,
		EngagementID: input.EngagementID,
		SprintID:     input.SprintID,
		Title:        input.Title,
		Description:  input.Description,
		Status:       domain.IssueStatusBacklog,
		Priority:     priority,
		AssigneeID:   input.AssigneeID,
		DueDate:      input.DueDate,
		CreatedBy:    createdBy,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) GetByID(ctx context.Context, tenantID, issueID uuid.UUID) (*domain.Issue, error) {
	return s.issues.GetByID(ctx, tenantID, issueID)
}

func (s *issueService) List(ctx context.Context, tenantID uuid.UUID, status *domain.IssueStatus, sprintID *uuid.UUID, offset, limit int) ([]domain.Issue, int, error) {
	return s.issues.ListByTenant(ctx, tenantID, status, sprintID, offset, limit)
}

func (s *issueService) Board(ctx context.Context, tenantID uuid.UUID, sprintID *uuid.UUID) ([]BoardColumn, error) {
	issues, _, err := s.issues.ListByTenant(ctx, tenantID, nil, sprintID, 0, 1000)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[domain.IssueStatus][]domain.Issue)
	for _, issue := range issues {
		byStatus[issue.Status] = append(byStatus[issue.Status], issue)
	}

	columns := make([]BoardColumn, 0, len(domain.BoardColumns))
	for _, status := range domain.BoardColumns {
		col := BoardColumn{Status: status, Issues: byStatus[status]}
		if col.Issues == nil {
			col.Issues = []domain.Issue{}
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func (s *issueService) Update(ctx context.Context, tenantID, issueID uuid.UUID, input UpdateIssueInput) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, tenantID, issueID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		issue.Title = *input.Title
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Priority != nil {
		issue.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		issue.AssigneeID = input.AssigneeID
	}
	if input.DueDate != nil {
		issue.DueDate = input.DueDate
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) Move(ctx context.Context, tenantID, issueID uuid.UUID, status domain.IssueStatus) error {
	return s.issues.UpdateStatus(ctx, tenantID, issueID, status)
}

func (s *issueService) AssignSprint(ctx context.Context, tenantID, issueID uuid.UUID, sprintID *uuid.UUID) error {
	if sprintID != nil {
		if _, err := s.sprints.GetByID(ctx, tenantID, *sprintID); err != nil {
			return err
		}
	}
	return s.issues.AssignSprint(ctx, tenantID, issueID, sprintID)
}

func (s *issueService) Delete(ctx context.Context, tenantID, issueID uuid.UUID) error {
	return s.issues.Delete(ctx, tenantID, issueID)
}

func (s *issueService) CreateSprint(ctx context.Context, tenantID uuid.UUID, input CreateSprintInput) (*domain.Sprint, error) {
	sprint := &domain.Sprint{
		TenantID:     tenantID,
		EngagementID: input.EngagementID,
		Name:         input.Name,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		IsActive:     true,
	}
	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *issueService) ListSprints(ctx context.Context, tenantID uuid.UUID) ([]domain.Sprint, error) {
	return s.sprints.ListByTenant(ctx, tenantID)
}

func (s *issueService) CloseSprint(ctx context.Context, tenantID, sprintID uuid.UUID) (*domain.Sprint, error) {
	sprint, err := s.sprints.GetByID(ctx, tenantID, sprintID)
	if err != nil {
		return nil, err
	}
	sprint.IsActive = false
	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *issueService) DeleteSprint(ctx context.Context, tenantID, sprintID uuid.UUID) error {
	return s.sprints.Delete(ctx, tenantID, sprintID)
}
