package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
	"auditdesk/internal/review"
)

// SectionView is a section with its derived review state for one viewer.
type SectionView struct {
	Section domain.Section        `json:"section"`
	Summary review.SectionSummary `json:"summary"`
}

// ReviewService defines the review and sign-off contract.
type ReviewService interface {
	// Review appends a review entry for the acting user on a section.
	Review(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, userID uuid.UUID) (*review.SectionSummary, error)
	// Unreview removes a specific review entry, subject to the hierarchy rule.
	Unreview(ctx context.Context, tenantID, engagementID uuid.UUID, entryID, userID uuid.UUID) error
	// SectionSummary returns the derived view of one section for the viewer.
	SectionSummary(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, viewerID uuid.UUID) (*SectionView, error)
	// EngagementOverview returns every section with its derived view.
	EngagementOverview(ctx context.Context, tenantID, engagementID, viewerID uuid.UUID) ([]SectionView, error)
	// SignOff marks a section signed off at its configured level.
	SignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, userID uuid.UUID) error
	// RemoveSignOff clears a section's sign-off, subject to the same gate.
	RemoveSignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, userID uuid.UUID) error
}

type reviewService struct {
	engagements port.EngagementRepository
	sections    port.SectionRepository
	reviews     port.ReviewRepository
	users       port.UserRepository
	email       port.EmailSender
	frontendURL string
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	engagements port.EngagementRepository,
	sections port.SectionRepository,
	reviews port.ReviewRepository,
	users port.UserRepository,
	email port.EmailSender,
	frontendURL string,
) ReviewService {
	return &reviewService{
		engagements: engagements,
		sections:    sections,
		reviews:     reviews,
		users:       users,
		email:       email,
		frontendURL: frontendURL,
	}
}

// actor bundles the loaded user, engagement, and the derived engagement role.
type actor struct {
	user       *domain.User
	engagement *domain.Engagement
	role       domain.ReviewRole
}

func (s *reviewService) loadActor(ctx context.Context, tenantID, engagementID, userID uuid.UUID) (*actor, error) {
	e, err := s.engagements.GetByID(ctx, tenantID, engagementID)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return &actor{user: u, engagement: e, role: review.ProjectRole(e, userID)}, nil
}

func (s *reviewService) Review(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, userID uuid.UUID) (*review.SectionSummary, error) {
	a, err := s.loadActor(ctx, tenantID, engagementID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.sections.Get(ctx, tenantID, engagementID, sectionID); err != nil {
		return nil, err
	}
	if !review.CanReview(a.role, a.user.IsPrivileged()) {
		return nil, domain.ErrNotReviewer
	}

	// Privileged users without an engagement role record under lead_partner,
	// the only bucket that completes a section on its own.
	role := a.role
	if role == "" || role == domain.ReviewRoleLeadDeveloper {
		role = domain.ReviewRoleLeadPartner
	}

	entry := &domain.ReviewEntry{
		TenantID:     tenantID,
		EngagementID: engagementID,
		SectionID:    sectionID,
		Role:         role,
		UserID:       userID,
		UserName:     a.user.FullName,
	}
	if err := s.reviews.Create(ctx, entry); err != nil {
		return nil, err
	}

	entries, err := s.reviews.ListBySection(ctx, tenantID, engagementID, sectionID)
	if err != nil {
		return nil, err
	}
	grouped := domain.GroupReviews(entries)
	summary := review.Summarize(&grouped, userID, a.role, a.user.IsPrivileged())

	s.notify(ctx, a.engagement, sectionID, &grouped)

	return &summary, nil
}

func (s *reviewService) Unreview(ctx context.Context, tenantID, engagementID uuid.UUID, entryID, userID uuid.UUID) error {
	a, err := s.loadActor(ctx, tenantID, engagementID, userID)
	if err != nil {
		return err
	}
	entry, err := s.reviews.GetByID(ctx, tenantID, entryID)
	if err != nil {
		return err
	}
	if entry.EngagementID != engagementID {
		return domain.ErrReviewNotFound
	}
	if !review.CanUnreview(userID, a.role, a.user.IsPrivileged(), *entry) {
		return domain.ErrUnreviewDenied
	}
	return s.reviews.Delete(ctx, tenantID, entryID)
}

func (s *reviewService) SectionSummary(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, viewerID uuid.UUID) (*SectionView, error) {
	a, err := s.loadActor(ctx, tenantID, engagementID, viewerID)
	if err != nil {
		return nil, err
	}
	section, err := s.sections.Get(ctx, tenantID, engagementID, sectionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.reviews.ListBySection(ctx, tenantID, engagementID, sectionID)
	if err != nil {
		return nil, err
	}
	grouped := domain.GroupReviews(entries)
	return &SectionView{
		Section: *section,
		Summary: review.Summarize(&grouped, viewerID, a.role, a.user.IsPrivileged()),
	}, nil
}

func (s *reviewService) EngagementOverview(ctx context.Context, tenantID, engagementID, viewerID uuid.UUID) ([]SectionView, error) {
	a, err := s.loadActor(ctx, tenantID, engagementID, viewerID)
	if err != nil {
		return nil, err
	}
	sections, err := s.sections.ListByEngagement(ctx, tenantID, engagementID)
	if err != nil {
		return nil, err
	}
	entries, err := s.reviews.ListByEngagement(ctx, tenantID, engagementID)
	if err != nil {
		return nil, err
	}

	bySection := make(map[string][]domain.ReviewEntry)
	for _, e := range entries {
		bySection[e.SectionID] = append(bySection[e.SectionID], e)
	}

	views := make([]SectionView, 0, len(sections))
	for _, section := range sections {
		grouped := domain.GroupReviews(bySection[section.SectionID])
		views = append(views, SectionView{
			Section: section,
			Summary: review.Summarize(&grouped, viewerID, a.role, a.user.IsPrivileged()),
		})
	}
	return views, nil
}

func (s *reviewService) SignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, userID uuid.UUID) error {
	return s.setSignOff(ctx, tenantID, engagementID, sectionID, userID, true)
}

func (s *reviewService) RemoveSignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, userID uuid.UUID) error {
	return s.setSignOff(ctx, tenantID, engagementID, sectionID, userID, false)
}

func (s *reviewService) setSignOff(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string, userID uuid.UUID, signedOff bool) error {
	a, err := s.loadActor(ctx, tenantID, engagementID, userID)
	if err != nil {
		return err
	}
	section, err := s.sections.Get(ctx, tenantID, engagementID, sectionID)
	if err != nil {
		return err
	}
	if !review.CanSignOff(a.role, a.user.IsPrivileged(), section.SignOffLevel) {
		return domain.ErrSignOffDenied
	}

	var by *uuid.UUID
	if signedOff {
		by = &userID
	}
	return s.sections.SetSignOff(ctx, tenantID, engagementID, sectionID, section.SignOffLevel, signedOff, by)
}

// notify emails the relevant team members after a review lands. Completion
// goes to the lead partners; a section entering review goes to the lowest
// bucket that has not yet contributed. Failures are logged, never returned.
func (s *reviewService) notify(ctx context.Context, e *domain.Engagement, sectionID string, grouped *domain.SectionReviews) {
	var (
		recipients []uuid.UUID
		completed  bool
	)
	switch {
	case review.Level(grouped) == domain.ReviewLevelCompleted:
		recipients = e.Team.LeadPartner
		completed = true
	case review.Status(grouped) != domain.SectionNotReviewed:
		recipients = s.nextReviewers(e, grouped)
	}
	if len(recipients) == 0 {
		return
	}

	users, err := s.users.ListByIDs(ctx, e.TenantID, recipients)
	if err != nil {
		log.Printf("reviewService.notify: loading recipients: %v", err)
		return
	}

	link := fmt.Sprintf("%s/engagements/%s/sections/%s", s.frontendURL, e.ID, sectionID)
	for _, u := range users {
		if completed {
			err = s.email.SendReviewCompleted(ctx, u.Email, u.FullName, e.Name, sectionID, link)
		} else {
			err = s.email.SendReviewRequested(ctx, u.Email, u.FullName, e.Name, sectionID, link)
		}
		if err != nil {
			log.Printf("reviewService.notify: sending to %s: %v", u.Email, err)
		}
	}
}

// nextReviewers returns the members of the lowest role bucket that has team
// assignments but no review entry yet.
func (s *reviewService) nextReviewers(e *domain.Engagement, grouped *domain.SectionReviews) []uuid.UUID {
	buckets := []struct {
		members []uuid.UUID
		entries []domain.ReviewEntry
	}{
		{e.Team.Staff, grouped.Staff},
		{e.Team.InCharge, grouped.InCharge},
		{e.Team.Manager, grouped.Manager},
		{e.Team.Partner, grouped.Partner},
		{e.Team.LeadPartner, grouped.LeadPartner},
	}
	for _, b := range buckets {
		if len(b.members) > 0 && len(b.entries) == 0 {
			return b.members
		}
	}
	return nil
}
