package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockBalanceImportRepo is a mock implementation of port.BalanceImportRepository.
type MockBalanceImportRepo struct {
	mock.Mock
}

func (m *MockBalanceImportRepo) Create(ctx context.Context, imp *domain.BalanceImport) error {
	args := m.Called(ctx, imp)
	return args.Error(0)
}

func (m *MockBalanceImportRepo) GetByID(ctx context.Context, tenantID, importID uuid.UUID) (*domain.BalanceImport, error) {
	args := m.Called(ctx, tenantID, importID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceImport), args.Error(1)
}

func (m *MockBalanceImportRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID, offset, limit int) ([]domain.BalanceImport, int, error) {
	args := m.Called(ctx, tenantID, engagementID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BalanceImport), args.Int(1), args.Error(2)
}

func (m *MockBalanceImportRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.BalanceImport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceImport), args.Error(1)
}

func (m *MockBalanceImportRepo) MarkDone(ctx context.Context, importID uuid.UUID) error {
	args := m.Called(ctx, importID)
	return args.Error(0)
}

func (m *MockBalanceImportRepo) MarkError(ctx context.Context, importID uuid.UUID, message string) error {
	args := m.Called(ctx, importID, message)
	return args.Error(0)
}

func (m *MockBalanceImportRepo) Requeue(ctx context.Context, importID uuid.UUID) error {
	args := m.Called(ctx, importID)
	return args.Error(0)
}
