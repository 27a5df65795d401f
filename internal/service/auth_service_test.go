package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"auditdesk/internal/config"
	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type authFixture struct {
	users   *mocks.MockUserRepo
	tenants *mocks.MockTenantRepo
	svc     service.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:   new(mocks.MockUserRepo),
		tenants: new(mocks.MockTenantRepo),
	}
	f.svc = service.NewAuthService(f.users, f.tenants, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "auditdesk-test",
	})
	return f
}

func activeUser(tenantID uuid.UUID, password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "auditor@firm.test",
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func TestAuthService_Login_IssuesValidatableToken(t *testing.T) {
	f := newAuthFixture()
	tenantID := uuid.New()
	user := activeUser(tenantID, "correct horse battery")

	f.tenants.On("GetBySlug", mock.Anything, "acme").
		Return(&domain.Tenant{ID: tenantID, Slug: "acme", IsActive: true}, nil)
	f.users.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      user.Email,
		Password:   "correct horse battery",
	})

	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	claims, err := f.svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	tenantID := uuid.New()
	user := activeUser(tenantID, "correct horse battery")

	f.tenants.On("GetBySlug", mock.Anything, "acme").
		Return(&domain.Tenant{ID: tenantID, Slug: "acme", IsActive: true}, nil)
	f.users.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	_, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      user.Email,
		Password:   "wrong password!",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownTenantHidesExistence(t *testing.T) {
	f := newAuthFixture()

	f.tenants.On("GetBySlug", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "ghost",
		Email:      "a@b.test",
		Password:   "irrelevant",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	f.users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_InactiveTenant(t *testing.T) {
	f := newAuthFixture()

	f.tenants.On("GetBySlug", mock.Anything, "dormant").
		Return(&domain.Tenant{ID: uuid.New(), Slug: "dormant", IsActive: false}, nil)

	_, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "dormant",
		Email:      "a@b.test",
		Password:   "irrelevant",
	})

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture()
	tenantID := uuid.New()
	user := activeUser(tenantID, "correct horse battery")

	f.tenants.On("GetBySlug", mock.Anything, "acme").
		Return(&domain.Tenant{ID: tenantID, Slug: "acme", IsActive: true}, nil)
	f.users.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      user.Email,
		Password:   "correct horse battery",
	})
	require.NoError(t, err)

	// An access token presented to the refresh endpoint must be rejected.
	_, err = f.svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshToken_RotatesPair(t *testing.T) {
	f := newAuthFixture()
	tenantID := uuid.New()
	user := activeUser(tenantID, "correct horse battery")

	f.tenants.On("GetBySlug", mock.Anything, "acme").
		Return(&domain.Tenant{ID: tenantID, Slug: "acme", IsActive: true}, nil)
	f.users.On("GetByEmail", mock.Anything, tenantID, user.Email).Return(user, nil)
	f.users.On("GetByID", mock.Anything, tenantID, user.ID).Return(user, nil)

	pair, err := f.svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      user.Email,
		Password:   "correct horse battery",
	})
	require.NoError(t, err)

	next, err := f.svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	claims, err := f.svc.ValidateToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}
