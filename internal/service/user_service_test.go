package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type userFixture struct {
	users *mocks.MockUserRepo
	svc   service.UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{users: new(mocks.MockUserRepo)}
	f.svc = service.NewUserService(f.users)
	return f
}

func TestUserService_Create_NormalizesEmail(t *testing.T) {
	f := newUserFixture()
	tenantID := uuid.New()

	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ana@firm.test" &&
			u.JobTitle == "Senior Auditor" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse battery")) == nil
	})).Return(nil)

	user, err := f.svc.Create(context.Background(), tenantID, service.CreateUserInput{
		Email:    "  Ana@Firm.Test ",
		Password: "correct horse battery",
		FullName: "Ana Staff",
		JobTitle: "Senior Auditor",
		Role:     domain.RoleMember,
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@firm.test", user.Email)
	assert.True(t, user.IsActive)
	f.users.AssertExpectations(t)
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), service.CreateUserInput{
		Email:    "ana@firm.test",
		Password: "correct horse battery",
		FullName: "Ana Staff",
		Role:     domain.UserRole("superuser"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	f := newUserFixture()
	tenantID := uuid.New()
	userID := uuid.New()

	hash, _ := bcrypt.GenerateFromPassword([]byte("old password 123"), bcrypt.MinCost)
	f.users.On("GetByID", mock.Anything, tenantID, userID).
		Return(&domain.User{ID: userID, TenantID: tenantID, PasswordHash: string(hash)}, nil)

	err := f.svc.ChangePassword(context.Background(), tenantID, userID, service.ChangePasswordInput{
		CurrentPassword: "not the old password",
		NewPassword:     "new password 456",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword_StoresNewHash(t *testing.T) {
	f := newUserFixture()
	tenantID := uuid.New()
	userID := uuid.New()

	hash, _ := bcrypt.GenerateFromPassword([]byte("old password 123"), bcrypt.MinCost)
	f.users.On("GetByID", mock.Anything, tenantID, userID).
		Return(&domain.User{ID: userID, TenantID: tenantID, PasswordHash: string(hash)}, nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new password 456")) == nil
	})).Return(nil)

	err := f.svc.ChangePassword(context.Background(), tenantID, userID, service.ChangePasswordInput{
		CurrentPassword: "old password 123",
		NewPassword:     "new password 456",
	})

	assert.NoError(t, err)
	f.users.AssertExpectations(t)
}

func TestUserService_Update_NormalizesEmailAndTitle(t *testing.T) {
	f := newUserFixture()
	tenantID := uuid.New()
	userID := uuid.New()

	f.users.On("GetByID", mock.Anything, tenantID, userID).
		Return(&domain.User{ID: userID, TenantID: tenantID, Email: "ana@firm.test", Role: domain.RoleMember}, nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ana.staff@firm.test" && u.JobTitle == "Audit Manager"
	})).Return(nil)

	email := " Ana.Staff@Firm.Test "
	title := "Audit Manager"
	user, err := f.svc.Update(context.Background(), tenantID, userID, service.UpdateUserInput{
		Email:    &email,
		JobTitle: &title,
	})

	require.NoError(t, err)
	assert.Equal(t, "ana.staff@firm.test", user.Email)
	f.users.AssertExpectations(t)
}
