package review_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"auditdesk/internal/domain"
	"auditdesk/internal/review"
)

func entry(role domain.ReviewRole, userID uuid.UUID) domain.ReviewEntry {
	return domain.ReviewEntry{
		ID:         uuid.New(),
		Role:       role,
		UserID:     userID,
		UserName:   "Reviewer",
		ReviewedAt: time.Now(),
	}
}

func fullReviews(userID uuid.UUID) domain.SectionReviews {
	return domain.SectionReviews{
		Staff:       []domain.ReviewEntry{entry(domain.ReviewRoleStaff, userID)},
		InCharge:    []domain.ReviewEntry{entry(domain.ReviewRoleInCharge, userID)},
		Manager:     []domain.ReviewEntry{entry(domain.ReviewRoleManager, userID)},
		Partner:     []domain.ReviewEntry{entry(domain.ReviewRolePartner, userID)},
		LeadPartner: []domain.ReviewEntry{entry(domain.ReviewRoleLeadPartner, userID)},
	}
}

func TestProjectRole_FirstMatchWins(t *testing.T) {
	userID := uuid.New()
	leadDev := uuid.New()

	e := &domain.Engagement{
		LeadDeveloperID: &leadDev,
		Team: domain.TeamAssignments{
			// Same user in two buckets: the higher check order (partner) wins.
			Partner: []uuid.UUID{userID},
			Staff:   []uuid.UUID{userID},
		},
	}

	assert.Equal(t, domain.ReviewRolePartner, review.ProjectRole(e, userID))
	assert.Equal(t, domain.ReviewRoleLeadDeveloper, review.ProjectRole(e, leadDev))
	assert.Equal(t, domain.ReviewRole(""), review.ProjectRole(e, uuid.New()))
}

func TestProjectRole_LeadDeveloperShadowsTeamAssignment(t *testing.T) {
	userID := uuid.New()
	e := &domain.Engagement{
		LeadDeveloperID: &userID,
		Team:            domain.TeamAssignments{LeadPartner: []uuid.UUID{userID}},
	}
	assert.Equal(t, domain.ReviewRoleLeadDeveloper, review.ProjectRole(e, userID))
}

func TestStatus_Derivation(t *testing.T) {
	userID := uuid.New()

	empty := domain.SectionReviews{}
	assert.Equal(t, domain.SectionNotReviewed, review.Status(&empty))

	staffOnly := domain.SectionReviews{Staff: []domain.ReviewEntry{entry(domain.ReviewRoleStaff, userID)}}
	assert.Equal(t, domain.SectionReadyForReview, review.Status(&staffOnly))

	// Lead partner review marks the section reviewed even when the lower
	// buckets are empty: reviews may arrive in any order.
	leadOnly := domain.SectionReviews{LeadPartner: []domain.ReviewEntry{entry(domain.ReviewRoleLeadPartner, userID)}}
	assert.Equal(t, domain.SectionReviewed, review.Status(&leadOnly))
	assert.Equal(t, domain.ReviewLevelInProgress, review.Level(&leadOnly))
}

func TestLevel_CompletedIffAllBucketsNonEmpty(t *testing.T) {
	userID := uuid.New()
	full := fullReviews(userID)
	assert.Equal(t, domain.ReviewLevelCompleted, review.Level(&full))

	// Adding more entries never un-completes.
	full.Staff = append(full.Staff, entry(domain.ReviewRoleStaff, uuid.New()))
	assert.Equal(t, domain.ReviewLevelCompleted, review.Level(&full))

	// Removing the sole entry from any one bucket demotes to in_progress.
	for _, role := range domain.ReviewRoleHierarchy {
		r := fullReviews(userID)
		switch role {
		case domain.ReviewRoleStaff:
			r.Staff = nil
		case domain.ReviewRoleInCharge:
			r.InCharge = nil
		case domain.ReviewRoleManager:
			r.Manager = nil
		case domain.ReviewRolePartner:
			r.Partner = nil
		case domain.ReviewRoleLeadPartner:
			r.LeadPartner = nil
		}
		assert.Equal(t, domain.ReviewLevelInProgress, review.Level(&r), "bucket %s emptied", role)
	}

	empty := domain.SectionReviews{}
	assert.Equal(t, domain.ReviewLevelPending, review.Level(&empty))
}

func TestCanReview(t *testing.T) {
	for _, role := range domain.ReviewRoleHierarchy {
		assert.True(t, review.CanReview(role, false), "role %s", role)
	}
	assert.False(t, review.CanReview(domain.ReviewRoleLeadDeveloper, false))
	assert.False(t, review.CanReview("", false))
	assert.True(t, review.CanReview("", true), "privileged user with no role")
	assert.True(t, review.CanReview(domain.ReviewRoleLeadDeveloper, true))
}

func TestCanUnreview_Hierarchy(t *testing.T) {
	caller := uuid.New()
	other := uuid.New()

	hierarchy := domain.ReviewRoleHierarchy
	for i, lower := range hierarchy {
		for j, higher := range hierarchy {
			e := entry(lower, other)
			got := review.CanUnreview(caller, higher, false, e)
			assert.Equal(t, j > i, got, "caller %s removing %s entry", higher, lower)
		}
	}
}

func TestCanUnreview_NeverOwnEntry(t *testing.T) {
	caller := uuid.New()
	own := entry(domain.ReviewRoleStaff, caller)

	// Even a lead partner cannot retract their own entry.
	assert.False(t, review.CanUnreview(caller, domain.ReviewRoleLeadPartner, false, own))

	// A privileged user can remove anything, including their own.
	assert.True(t, review.CanUnreview(caller, domain.ReviewRoleLeadPartner, true, own))
}

func TestCanUnreview_NoRoleCaller(t *testing.T) {
	e := entry(domain.ReviewRoleStaff, uuid.New())
	assert.False(t, review.CanUnreview(uuid.New(), "", false, e))
	assert.False(t, review.CanUnreview(uuid.New(), domain.ReviewRoleLeadDeveloper, false, e))
}

func TestIndicatorFor_Precedence(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()

	// Fully completed section viewed by an eligible, already-reviewed user:
	// green wins over blue.
	full := fullReviews(userID)
	assert.Equal(t, domain.IndicatorGreen, review.IndicatorFor(&full, userID, domain.ReviewRoleStaff, false))

	// Own bucket non-empty beats eligibility.
	partial := domain.SectionReviews{Staff: []domain.ReviewEntry{entry(domain.ReviewRoleStaff, userID)}}
	assert.Equal(t, domain.IndicatorBlue, review.IndicatorFor(&partial, userID, domain.ReviewRoleStaff, false))

	// Eligible but not yet reviewed.
	assert.Equal(t, domain.IndicatorOrange, review.IndicatorFor(&partial, other, domain.ReviewRoleManager, false))

	// No role, not privileged.
	assert.Equal(t, domain.IndicatorGrey, review.IndicatorFor(&partial, other, "", false))
	assert.Equal(t, domain.IndicatorGrey, review.IndicatorFor(&partial, other, domain.ReviewRoleLeadDeveloper, false))

	// Privileged viewer with no role is always at least eligible.
	assert.Equal(t, domain.IndicatorOrange, review.IndicatorFor(&partial, other, "", true))
}

func TestIndicatorFor_PrivilegedReviewerTurnsBlue(t *testing.T) {
	adminID := uuid.New()

	// An admin with no engagement role records under lead_partner. Their
	// indicator must reflect that entry even though their derived role
	// points at no bucket.
	r := domain.SectionReviews{LeadPartner: []domain.ReviewEntry{entry(domain.ReviewRoleLeadPartner, adminID)}}
	assert.Equal(t, domain.IndicatorBlue, review.IndicatorFor(&r, adminID, "", true))

	// Another privileged viewer who has not reviewed stays orange.
	assert.Equal(t, domain.IndicatorOrange, review.IndicatorFor(&r, uuid.New(), "", true))
}

func TestCanSignOff(t *testing.T) {
	cases := []struct {
		role  domain.ReviewRole
		level domain.SignOffLevel
		want  bool
	}{
		{domain.ReviewRoleStaff, domain.SignOffLevelInCharge, false},
		{domain.ReviewRoleInCharge, domain.SignOffLevelInCharge, true},
		{domain.ReviewRoleManager, domain.SignOffLevelInCharge, true},
		{domain.ReviewRoleLeadPartner, domain.SignOffLevelInCharge, true},
		{domain.ReviewRoleInCharge, domain.SignOffLevelManager, false},
		{domain.ReviewRoleManager, domain.SignOffLevelManager, true},
		{domain.ReviewRolePartner, domain.SignOffLevelManager, true},
		{domain.ReviewRoleLeadDeveloper, domain.SignOffLevelInCharge, false},
		{"", domain.SignOffLevelManager, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, review.CanSignOff(tc.role, false, tc.level),
			"role %q level %q", tc.role, tc.level)
	}

	assert.True(t, review.CanSignOff("", true, domain.SignOffLevelManager))
}

func TestSummarize(t *testing.T) {
	userID := uuid.New()
	r := domain.SectionReviews{Manager: []domain.ReviewEntry{entry(domain.ReviewRoleManager, userID)}}

	s := review.Summarize(&r, userID, domain.ReviewRoleManager, false)
	assert.Equal(t, domain.SectionReadyForReview, s.Status)
	assert.Equal(t, domain.ReviewLevelInProgress, s.Level)
	assert.Equal(t, domain.IndicatorBlue, s.Indicator)
	assert.Len(t, s.Reviews.Manager, 1)
}
