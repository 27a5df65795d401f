package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
)

// MockSectionRepo is a mock implementation of port.SectionRepository.
type MockSectionRepo struct {
	mock.Mock
}

func (m *MockSectionRepo) Create(ctx context.Context, s *domain.Section) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSectionRepo) BatchCreate(ctx context.Context, sections []domain.Section) error {
	args := m.Called(ctx, sections)
	return args.Error(0)
}

func (m *MockSectionRepo) Get(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) (*domain.Section, error) {
	args := m.Called(ctx, tenantID, engagementID, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func (m *MockSectionRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.Section, error) {
	args := m.Called(ctx, tenantID, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Section), args.Error(1)
}

func (m *MockSectionRepo) Update(ctx context.Context, s *domain.Section) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSectionRepo) SetSignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, level domain.SignOffLevel, signedOff bool, byUserID *uuid.UUID) error {
	args := m.Called(ctx, tenantID, engagementID, sectionID, level, signedOff, byUserID)
	return args.Error(0)
}

func (m *MockSectionRepo) Delete(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) error {
	args := m.Called(ctx, tenantID, engagementID, sectionID)
	return args.Error(0)
}
