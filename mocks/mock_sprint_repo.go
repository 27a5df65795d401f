package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockSprintRepo is a mock implementation of port.SprintRepository.
type MockSprintRepo struct {
	mock.Mock
}

func (m *MockSprintRepo) Create(ctx context.Context, sprint *domain.Sprint) error {
	args := m.Called(ctx, sprint)
	return args.Error(0)
}

func (m *MockSprintRepo) GetByID(ctx context.Context, tenantID, sprintID uuid.UUID) (*domain.Sprint, error) {
	args := m.Called(ctx, tenantID, sprintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sprint), args.Error(1)
}

func (m *MockSprintRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Sprint, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sprint), args.Error(1)
}

func (m *MockSprintRepo) Update(ctx context.Context, sprint *domain.Sprint) error {
	args := m.Called(ctx, sprint)
	return args.Error(0)
}

func (m *MockSprintRepo) Delete(ctx context.Context, tenantID, sprintID uuid.UUID) error {
	args := m.Called(ctx, tenantID, sprintID)
	return args.Error(0)
}
