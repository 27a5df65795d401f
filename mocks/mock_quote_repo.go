package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockQuoteRepo is a mock implementation of port.QuoteRepository.
type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepo) GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*domain.Quote, error) {
	args := m.Called(ctx, tenantID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.QuoteStatus, offset, limit int) ([]domain.Quote, int, error) {
	args := m.Called(ctx, tenantID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Quote), args.Int(1), args.Error(2)
}

func (m *MockQuoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepo) UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status domain.QuoteStatus) error {
	args := m.Called(ctx, tenantID, quoteID, status)
	return args.Error(0)
}

func (m *MockQuoteRepo) Delete(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, quoteID)
	return args.Error(0)
}
