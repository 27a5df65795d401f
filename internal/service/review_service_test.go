package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type reviewFixture struct {
	engagements *mocks.MockEngagementRepo
	sections    *mocks.MockSectionRepo
	reviews     *mocks.MockReviewRepo
	users       *mocks.MockUserRepo
	email       *mocks.MockEmailSender
	svc         service.ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		engagements: new(mocks.MockEngagementRepo),
		sections:    new(mocks.MockSectionRepo),
		reviews:     new(mocks.MockReviewRepo),
		users:       new(mocks.MockUserRepo),
		email:       new(mocks.MockEmailSender),
	}
	f.svc = service.NewReviewService(f.engagements, f.sections, f.reviews, f.users, f.email, "https://app.example.com")
	return f
}

func TestReviewService_Review_StaffMember(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	userID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Name:     "FY25 Audit",
		Team:     domain.TeamAssignments{Staff: []uuid.UUID{userID}},
	}
	user := &domain.User{ID: userID, TenantID: tenantID, FullName: "Ana Staff", Role: domain.RoleMember, IsActive: true}
	section := &domain.Section{TenantID: tenantID, EngagementID: engagementID, SectionID: "B2"}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, userID).Return(user, nil)
	f.sections.On("Get", mock.Anything, tenantID, engagementID, "B2").Return(section, nil)
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ReviewEntry) bool {
		return e.Role == domain.ReviewRoleStaff && e.UserID == userID && e.UserName == "Ana Staff"
	})).Return(nil)
	f.reviews.On("ListBySection", mock.Anything, tenantID, engagementID, "B2").Return([]domain.ReviewEntry{
		{SectionID: "B2", Role: domain.ReviewRoleStaff, UserID: userID},
	}, nil)

	summary, err := f.svc.Review(context.Background(), tenantID, engagementID, "B2", userID)

	assert.NoError(t, err)
	assert.Equal(t, domain.SectionReadyForReview, summary.Status)
	assert.Equal(t, domain.ReviewLevelInProgress, summary.Level)
	f.reviews.AssertExpectations(t)
	f.email.AssertNotCalled(t, "SendReviewCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Review_RepeatAppendsSecondEntry(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	userID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Name:     "FY25 Audit",
		Team:     domain.TeamAssignments{Staff: []uuid.UUID{userID}},
	}
	user := &domain.User{ID: userID, TenantID: tenantID, FullName: "Ana Staff", Role: domain.RoleMember, IsActive: true}
	section := &domain.Section{TenantID: tenantID, EngagementID: engagementID, SectionID: "B2"}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, userID).Return(user, nil)
	f.sections.On("Get", mock.Anything, tenantID, engagementID, "B2").Return(section, nil)
	// A second review by the same user in the same role inserts again; the
	// log keeps both rows.
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ReviewEntry) bool {
		return e.Role == domain.ReviewRoleStaff && e.UserID == userID
	})).Return(nil).Twice()
	f.reviews.On("ListBySection", mock.Anything, tenantID, engagementID, "B2").Return([]domain.ReviewEntry{
		{SectionID: "B2", Role: domain.ReviewRoleStaff, UserID: userID},
	}, nil).Once()
	f.reviews.On("ListBySection", mock.Anything, tenantID, engagementID, "B2").Return([]domain.ReviewEntry{
		{SectionID: "B2", Role: domain.ReviewRoleStaff, UserID: userID},
		{SectionID: "B2", Role: domain.ReviewRoleStaff, UserID: userID},
	}, nil).Once()

	_, err := f.svc.Review(context.Background(), tenantID, engagementID, "B2", userID)
	assert.NoError(t, err)

	summary, err := f.svc.Review(context.Background(), tenantID, engagementID, "B2", userID)

	assert.NoError(t, err)
	assert.Len(t, summary.Reviews.Staff, 2)
	f.reviews.AssertExpectations(t)
}

func TestReviewService_Review_NotifiesNextBucket(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	staffID := uuid.New()
	inChargeID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Name:     "FY25 Audit",
		Team: domain.TeamAssignments{
			Staff:    []uuid.UUID{staffID},
			InCharge: []uuid.UUID{inChargeID},
		},
	}
	user := &domain.User{ID: staffID, TenantID: tenantID, FullName: "Ana Staff", Role: domain.RoleMember}
	section := &domain.Section{TenantID: tenantID, EngagementID: engagementID, SectionID: "B2"}
	inCharge := domain.User{ID: inChargeID, TenantID: tenantID, Email: "ic@firm.test", FullName: "Ivo InCharge"}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, staffID).Return(user, nil)
	f.sections.On("Get", mock.Anything, tenantID, engagementID, "B2").Return(section, nil)
	f.reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.reviews.On("ListBySection", mock.Anything, tenantID, engagementID, "B2").Return([]domain.ReviewEntry{
		{SectionID: "B2", Role: domain.ReviewRoleStaff, UserID: staffID},
	}, nil)
	f.users.On("ListByIDs", mock.Anything, tenantID, []uuid.UUID{inChargeID}).Return([]domain.User{inCharge}, nil)
	f.email.On("SendReviewRequested", mock.Anything, "ic@firm.test", "Ivo InCharge", "FY25 Audit", "B2", mock.Anything).Return(nil)

	_, err := f.svc.Review(context.Background(), tenantID, engagementID, "B2", staffID)

	assert.NoError(t, err)
	f.email.AssertExpectations(t)
}

func TestReviewService_Review_UnassignedMemberRejected(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	userID := uuid.New()

	engagement := &domain.Engagement{ID: engagementID, TenantID: tenantID}
	user := &domain.User{ID: userID, TenantID: tenantID, Role: domain.RoleMember}
	section := &domain.Section{TenantID: tenantID, EngagementID: engagementID, SectionID: "B2"}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, userID).Return(user, nil)
	f.sections.On("Get", mock.Anything, tenantID, engagementID, "B2").Return(section, nil)

	_, err := f.svc.Review(context.Background(), tenantID, engagementID, "B2", userID)

	assert.ErrorIs(t, err, domain.ErrNotReviewer)
	f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Review_AdminRecordsAsLeadPartner(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	adminID := uuid.New()

	engagement := &domain.Engagement{ID: engagementID, TenantID: tenantID, Name: "FY25 Audit"}
	admin := &domain.User{ID: adminID, TenantID: tenantID, FullName: "Root Admin", Role: domain.RoleAdmin}
	section := &domain.Section{TenantID: tenantID, EngagementID: engagementID, SectionID: "A1"}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, adminID).Return(admin, nil)
	f.sections.On("Get", mock.Anything, tenantID, engagementID, "A1").Return(section, nil)
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ReviewEntry) bool {
		return e.Role == domain.ReviewRoleLeadPartner
	})).Return(nil)
	f.reviews.On("ListBySection", mock.Anything, tenantID, engagementID, "A1").Return([]domain.ReviewEntry{
		{SectionID: "A1", Role: domain.ReviewRoleLeadPartner, UserID: adminID},
	}, nil)

	summary, err := f.svc.Review(context.Background(), tenantID, engagementID, "A1", adminID)

	assert.NoError(t, err)
	assert.Equal(t, domain.SectionReviewed, summary.Status)
	f.reviews.AssertExpectations(t)
}

func TestReviewService_Unreview_HigherRoleRemovesLowerEntry(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	managerID := uuid.New()
	staffID := uuid.New()
	entryID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Team:     domain.TeamAssignments{Manager: []uuid.UUID{managerID}},
	}
	manager := &domain.User{ID: managerID, TenantID: tenantID, Role: domain.RoleMember}
	entry := &domain.ReviewEntry{
		ID:           entryID,
		TenantID:     tenantID,
		EngagementID: engagementID,
		SectionID:    "B2",
		Role:         domain.ReviewRoleStaff,
		UserID:       staffID,
	}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, managerID).Return(manager, nil)
	f.reviews.On("GetByID", mock.Anything, tenantID, entryID).Return(entry, nil)
	f.reviews.On("Delete", mock.Anything, tenantID, entryID).Return(nil)

	err := f.svc.Unreview(context.Background(), tenantID, engagementID, entryID, managerID)

	assert.NoError(t, err)
	f.reviews.AssertExpectations(t)
}

func TestReviewService_Unreview_LowerRoleDenied(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	staffID := uuid.New()
	managerID := uuid.New()
	entryID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Team:     domain.TeamAssignments{Staff: []uuid.UUID{staffID}},
	}
	staff := &domain.User{ID: staffID, TenantID: tenantID, Role: domain.RoleMember}
	entry := &domain.ReviewEntry{
		ID:           entryID,
		TenantID:     tenantID,
		EngagementID: engagementID,
		SectionID:    "B2",
		Role:         domain.ReviewRoleManager,
		UserID:       managerID,
	}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, staffID).Return(staff, nil)
	f.reviews.On("GetByID", mock.Anything, tenantID, entryID).Return(entry, nil)

	err := f.svc.Unreview(context.Background(), tenantID, engagementID, entryID, staffID)

	assert.ErrorIs(t, err, domain.ErrUnreviewDenied)
	f.reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Unreview_WrongEngagement(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	managerID := uuid.New()
	entryID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Team:     domain.TeamAssignments{Manager: []uuid.UUID{managerID}},
	}
	manager := &domain.User{ID: managerID, TenantID: tenantID, Role: domain.RoleMember}
	entry := &domain.ReviewEntry{
		ID:           entryID,
		TenantID:     tenantID,
		EngagementID: uuid.New(),
		Role:         domain.ReviewRoleStaff,
		UserID:       uuid.New(),
	}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, managerID).Return(manager, nil)
	f.reviews.On("GetByID", mock.Anything, tenantID, entryID).Return(entry, nil)

	err := f.svc.Unreview(context.Background(), tenantID, engagementID, entryID, managerID)

	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestReviewService_SignOff_RoleBelowLevelDenied(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	inChargeID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Team:     domain.TeamAssignments{InCharge: []uuid.UUID{inChargeID}},
	}
	inCharge := &domain.User{ID: inChargeID, TenantID: tenantID, Role: domain.RoleMember}
	section := &domain.Section{
		TenantID:     tenantID,
		EngagementID: engagementID,
		SectionID:    "C1",
		SignOffLevel: domain.SignOffLevelManager,
	}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, inChargeID).Return(inCharge, nil)
	f.sections.On("Get", mock.Anything, tenantID, engagementID, "C1").Return(section, nil)

	err := f.svc.SignOff(context.Background(), tenantID, engagementID, "C1", inChargeID)

	assert.ErrorIs(t, err, domain.ErrSignOffDenied)
	f.sections.AssertNotCalled(t, "SetSignOff", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_SignOff_ManagerOnManagerLevel(t *testing.T) {
	f := newReviewFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	managerID := uuid.New()

	engagement := &domain.Engagement{
		ID:       engagementID,
		TenantID: tenantID,
		Team:     domain.TeamAssignments{Manager: []uuid.UUID{managerID}},
	}
	manager := &domain.User{ID: managerID, TenantID: tenantID, Role: domain.RoleMember}
	section := &domain.Section{
		TenantID:     tenantID,
		EngagementID: engagementID,
		SectionID:    "C1",
		SignOffLevel: domain.SignOffLevelManager,
	}

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(engagement, nil)
	f.users.On("GetByID", mock.Anything, tenantID, managerID).Return(manager, nil)
	f.sections.On("Get", mock.Anything, tenantID, engagementID, "C1").Return(section, nil)
	f.sections.On("SetSignOff", mock.Anything, tenantID, engagementID, "C1", domain.SignOffLevelManager, true, &managerID).Return(nil)

	err := f.svc.SignOff(context.Background(), tenantID, engagementID, "C1", managerID)

	assert.NoError(t, err)
	f.sections.AssertExpectations(t)
}
