package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockReviewRepo is a mock implementation of port.ReviewRepository.
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, entry *domain.ReviewEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReviewRepo) GetByID(ctx context.Context, tenantID uuid.UUID, entryID uuid.UUID) (*domain.ReviewEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewEntry), args.Error(1)
}

func (m *MockReviewRepo) Find(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, role domain.ReviewRole, userID uuid.UUID) (*domain.ReviewEntry, error) {
	args := m.Called(ctx, tenantID, engagementID, sectionID, role, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewEntry), args.Error(1)
}

func (m *MockReviewRepo) ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]domain.ReviewEntry, error) {
	args := m.Called(ctx, tenantID, engagementID, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewEntry), args.Error(1)
}

func (m *MockReviewRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ReviewEntry, error) {
	args := m.Called(ctx, tenantID, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewEntry), args.Error(1)
}

func (m *MockReviewRepo) Delete(ctx context.Context, tenantID uuid.UUID, entryID uuid.UUID) error {
	args := m.Called(ctx, tenantID, entryID)
	return args.Error(0)
}
