package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type coaFixture struct {
	accounts    *mocks.MockCOARepo
	engagements *mocks.MockEngagementRepo
	svc         service.COAService
}

func newCOAFixture() *coaFixture {
	f := &coaFixture{
		accounts:    new(mocks.MockCOARepo),
		engagements: new(mocks.MockEngagementRepo),
	}
	f.svc = service.NewCOAService(f.accounts, f.engagements)
	return f
}

const planText = `
Classe 1 : Comptes de capitaux
10 - Capital et reserves
101 Capital
106 Reserves

Classe 6 : Comptes de charges
60 - Achats
601 Achats stockes
`

func TestCOAService_ImportText_WritesAccountsAndAggregates(t *testing.T) {
	f := newCOAFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).
		Return(&domain.Engagement{ID: engagementID, TenantID: tenantID}, nil)
	f.accounts.On("BatchUpsert", mock.Anything, mock.MatchedBy(func(accounts []domain.ChartOfAccount) bool {
		return len(accounts) == 3
	})).Return(nil)
	f.accounts.On("UpsertDocument", mock.Anything, mock.MatchedBy(func(d *domain.COADocument) bool {
		return d.Kind == domain.COADocTemplate && d.EngagementID == engagementID
	})).Return(nil).Once()
	f.accounts.On("UpsertDocument", mock.Anything, mock.MatchedBy(func(d *domain.COADocument) bool {
		return d.Kind == domain.COADocRules && d.EngagementID == engagementID
	})).Return(nil).Once()

	accounts, err := f.svc.ImportText(context.Background(), tenantID, engagementID, "pcm-2024", strings.NewReader(planText))

	require.NoError(t, err)
	assert.Len(t, accounts, 3)
	f.accounts.AssertExpectations(t)
}

func TestCOAService_ImportText_UnknownEngagement(t *testing.T) {
	f := newCOAFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).
		Return(nil, domain.ErrEngagementNotFound)

	_, err := f.svc.ImportText(context.Background(), tenantID, engagementID, "pcm-2024", strings.NewReader(planText))

	assert.ErrorIs(t, err, domain.ErrEngagementNotFound)
	f.accounts.AssertNotCalled(t, "BatchUpsert", mock.Anything, mock.Anything)
	f.accounts.AssertNotCalled(t, "UpsertDocument", mock.Anything, mock.Anything)
}
