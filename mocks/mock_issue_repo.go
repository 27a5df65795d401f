package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockIssueRepo is a mock implementation of port.IssueRepository.
type MockIssueRepo struct {
	mock.Mock
}

func (m *MockIssueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepo) GetByID(ctx context.Context, tenantID, issueID uuid.UUID) (*domain.Issue, error) {
	args := m.Called(ctx, tenantID, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *MockIssueRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.IssueStatus, sprintID *uuid.UUID, offset, limit int) ([]domain.Issue, int, error) {
	args := m.Called(ctx, tenantID, status, sprintID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Issue), args.Int(1), args.Error(2)
}

func (m *MockIssueRepo) Update(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepo) UpdateStatus(ctx context.Context, tenantID, issueID uuid.UUID, status domain.IssueStatus) error {
	args := m.Called(ctx, tenantID, issueID, status)
	return args.Error(0)
}

func (m *MockIssueRepo) AssignSprint(ctx context.Context, tenantID, issueID uuid.UUID, sprintID *uuid.UUID) error {
	args := m.Called(ctx, tenantID, issueID, sprintID)
	return args.Error(0)
}

func (m *MockIssueRepo) Delete(ctx context.Context, tenantID, issueID uuid.UUID) error {
	args := m.Called(ctx, tenantID, issueID)
	return args.Error(0)
}
