package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockCommentRepo is a mock implementation of port.CommentRepository.
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepo) GetByID(ctx context.Context, tenantID, commentID uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, tenantID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepo) ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]domain.Comment, error) {
	args := m.Called(ctx, tenantID, engagementID, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID, onlyUnresolved bool) ([]domain.Comment, error) {
	args := m.Called(ctx, tenantID, engagementID, onlyUnresolved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepo) SetResolved(ctx context.Context, tenantID, commentID uuid.UUID, resolved bool) error {
	args := m.Called(ctx, tenantID, commentID, resolved)
	return args.Error(0)
}

func (m *MockCommentRepo) Delete(ctx context.Context, tenantID, commentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, commentID)
	return args.Error(0)
}
