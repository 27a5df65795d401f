package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type issueFixture struct {
	issues  *mocks.MockIssueRepo
	sprints *mocks.MockSprintRepo
	svc     service.IssueService
}

func newIssueFixture() *issueFixture {
	f := &issueFixture{
		issues:  new(mocks.MockIssueRepo),
		sprints: new(mocks.MockSprintRepo),
	}
	f.svc = service.NewIssueService(f.issues, f.sprints)
	return f
}

func TestIssueService_Create_DefaultsPriorityAndStatus(t *testing.T) {
	f := newIssueFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	createdBy := uuid.New()

	f.issues.On("Create", mock.Anything, mock.MatchedBy(func(issue *domain.Issue) bool {
		return issue.Status == domain.IssueStatusBacklog && issue.Priority == domain.IssuePriorityMedium
	})).Return(nil)

	issue, err := f.svc.Create(context.Background(), tenantID, createdBy, service.CreateIssueInput{
		EngagementID: engagementID,
		Title:        "Reconcile intercompany balances",
	})

	require.NoError(t, err)
	assert.Equal(t, createdBy, issue.CreatedBy)
	f.sprints.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueService_Create_ValidatesSprint(t *testing.T) {
	f := newIssueFixture()
	tenantID := uuid.New()
	sprintID := uuid.New()

	f.sprints.On("GetByID", mock.Anything, tenantID, sprintID).Return(nil, domain.ErrSprintNotFound)

	_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), service.CreateIssueInput{
		EngagementID: uuid.New(),
		Title:        "x",
		SprintID:     &sprintID,
	})

	assert.ErrorIs(t, err, domain.ErrSprintNotFound)
	f.issues.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIssueService_Board_GroupsByStatusWithEmptyColumns(t *testing.T) {
	f := newIssueFixture()
	tenantID := uuid.New()

	f.issues.On("ListByTenant", mock.Anything, tenantID, (*domain.IssueStatus)(nil), (*uuid.UUID)(nil), 0, 1000).
		Return([]domain.Issue{
			{ID: uuid.New(), Status: domain.IssueStatusBacklog},
			{ID: uuid.New(), Status: domain.IssueStatusInProgress},
			{ID: uuid.New(), Status: domain.IssueStatusBacklog},
		}, 3, nil)

	columns, err := f.svc.Board(context.Background(), tenantID, nil)

	require.NoError(t, err)
	require.Len(t, columns, len(domain.BoardColumns))

	byStatus := make(map[domain.IssueStatus][]domain.Issue)
	for _, col := range columns {
		require.NotNil(t, col.Issues)
		byStatus[col.Status] = col.Issues
	}
	assert.Len(t, byStatus[domain.IssueStatusBacklog], 2)
	assert.Len(t, byStatus[domain.IssueStatusInProgress], 1)
	assert.Empty(t, byStatus[domain.IssueStatusDone])
}

func TestIssueService_CloseSprint(t *testing.T) {
	f := newIssueFixture()
	tenantID := uuid.New()
	sprintID := uuid.New()

	f.sprints.On("GetByID", mock.Anything, tenantID, sprintID).
		Return(&domain.Sprint{ID: sprintID, IsActive: true}, nil)
	f.sprints.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Sprint) bool {
		return s.ID == sprintID && !s.IsActive
	})).Return(nil)

	sprint, err := f.svc.CloseSprint(context.Background(), tenantID, sprintID)

	require.NoError(t, err)
	assert.False(t, sprint.IsActive)
	f.sprints.AssertExpectations(t)
}
