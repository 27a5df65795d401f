package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockBalanceRepo is a mock implementation of port.BalanceRepository.
type MockBalanceRepo struct {
	mock.Mock
}

func (m *MockBalanceRepo) Upsert(ctx context.Context, set *domain.BalanceSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockBalanceRepo) GetByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.BalanceSet, error) {
	args := m.Called(ctx, tenantID, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSet), args.Error(1)
}

func (m *MockBalanceRepo) Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	args := m.Called(ctx, tenantID, engagementID)
	return args.Error(0)
}
