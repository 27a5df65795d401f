package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type tenantFixture struct {
	tenants *mocks.MockTenantRepo
	svc     service.TenantService
}

func newTenantFixture() *tenantFixture {
	f := &tenantFixture{tenants: new(mocks.MockTenantRepo)}
	f.svc = service.NewTenantService(f.tenants)
	return f
}

func TestTenantService_Create_DerivesSlugFromName(t *testing.T) {
	f := newTenantFixture()

	f.tenants.On("Create", mock.Anything, mock.MatchedBy(func(tn *domain.Tenant) bool {
		return tn.Slug == "durand-co" && tn.Name == "Durand & Co"
	})).Return(nil)

	tenant, err := f.svc.Create(context.Background(), service.CreateTenantInput{Name: "Durand & Co"})

	require.NoError(t, err)
	assert.Equal(t, "durand-co", tenant.Slug)
	assert.True(t, tenant.IsActive)
	f.tenants.AssertExpectations(t)
}

func TestTenantService_Create_NormalizesProvidedSlug(t *testing.T) {
	f := newTenantFixture()

	f.tenants.On("Create", mock.Anything, mock.MatchedBy(func(tn *domain.Tenant) bool {
		return tn.Slug == "my-firm"
	})).Return(nil)

	tenant, err := f.svc.Create(context.Background(), service.CreateTenantInput{
		Name: "My Firm SARL",
		Slug: "  My--Firm! ",
	})

	require.NoError(t, err)
	assert.Equal(t, "my-firm", tenant.Slug)
}

func TestTenantService_Create_RejectsUnusableSlug(t *testing.T) {
	f := newTenantFixture()

	_, err := f.svc.Create(context.Background(), service.CreateTenantInput{Name: "!!!", Slug: "***"})

	assert.ErrorIs(t, err, domain.ErrInvalidSlug)
	f.tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTenantService_Update_NormalizesSlug(t *testing.T) {
	f := newTenantFixture()
	id := uuid.New()

	f.tenants.On("GetByID", mock.Anything, id).
		Return(&domain.Tenant{ID: id, Name: "Durand & Co", Slug: "durand-co", IsActive: true}, nil)
	f.tenants.On("Update", mock.Anything, mock.MatchedBy(func(tn *domain.Tenant) bool {
		return tn.Slug == "durand-partners"
	})).Return(nil)

	slug := "Durand Partners"
	tenant, err := f.svc.Update(context.Background(), id, service.UpdateTenantInput{Slug: &slug})

	require.NoError(t, err)
	assert.Equal(t, "durand-partners", tenant.Slug)
	f.tenants.AssertExpectations(t)
}
