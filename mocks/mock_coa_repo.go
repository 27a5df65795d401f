package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockCOARepo is a mock implementation of port.COARepository.
type MockCOARepo struct {
	mock.Mock
}

func (m *MockCOARepo) BatchUpsert(ctx context.Context, accounts []domain.ChartOfAccount) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockCOARepo) UpsertDocument(ctx context.Context, doc *domain.COADocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCOARepo) GetDocument(ctx context.Context, tenantID, engagementID uuid.UUID, kind domain.COADocKind) (*domain.COADocument, error) {
	args := m.Called(ctx, tenantID, engagementID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.COADocument), args.Error(1)
}

func (m *MockCOARepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ChartOfAccount, error) {
	args := m.Called(ctx, tenantID, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccount), args.Error(1)
}

func (m *MockCOARepo) DeleteByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	args := m.Called(ctx, tenantID, engagementID)
	return args.Error(0)
}
