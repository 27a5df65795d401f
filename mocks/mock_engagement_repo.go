package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockEngagementRepo is a mock implementation of port.EngagementRepository.
type MockEngagementRepo struct {
	mock.Mock
}

func (m *MockEngagementRepo) Create(ctx context.Context, e *domain.Engagement) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEngagementRepo) GetByID(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.Engagement, error) {
	args := m.Called(ctx, tenantID, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engagement), args.Error(1)
}

func (m *MockEngagementRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Engagement), args.Int(1), args.Error(2)
}

func (m *MockEngagementRepo) ListByMember(ctx context.Context, tenantID, userID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error) {
	args := m.Called(ctx, tenantID, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Engagement), args.Int(1), args.Error(2)
}

func (m *MockEngagementRepo) Update(ctx context.Context, e *domain.Engagement) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEngagementRepo) UpdateTeam(ctx context.Context, tenantID, engagementID uuid.UUID, team domain.TeamAssignments, leadDeveloperID *uuid.UUID) error {
	args := m.Called(ctx, tenantID, engagementID, team, leadDeveloperID)
	return args.Error(0)
}

func (m *MockEngagementRepo) Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	args := m.Called(ctx, tenantID, engagementID)
	return args.Error(0)
}
