// Package review computes per-section, per-role review status and permission
// decisions from an engagement's stored review entries. All functions are
// pure: they own no storage, never error, and return booleans or derived
// enums for callers to act on.
package review

import (
	"github.com/google/uuid"

	"auditdesk/internal/domain"
)

// roleRank returns the position of a role in the reviewer hierarchy, or -1
// for roles that cannot review (including lead_developer and the empty role).
func roleRank(role domain.ReviewRole) int {
	for i, r := range domain.ReviewRoleHierarchy {
		if r == role {
			return i
		}
	}
	return -1
}

// contains reports whether id appears in ids.
func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ProjectRole derives a user's single effective role on an engagement from
// its team assignments. The first matching assignment in the fixed check
// order wins: lead_developer, lead_partner, partner, manager, in_charge,
// staff. Users absent from every list have no role and the empty string is
// returned.
func ProjectRole(e *domain.Engagement, userID uuid.UUID) domain.ReviewRole {
	if e.LeadDeveloperID != nil && *e.LeadDeveloperID == userID {
		return domain.ReviewRoleLeadDeveloper
	}
	switch {
	case contains(e.Team.LeadPartner, userID):
		return domain.ReviewRoleLeadPartner
	case contains(e.Team.Partner, userID):
		return domain.ReviewRolePartner
	case contains(e.Team.Manager, userID):
		return domain.ReviewRoleManager
	case contains(e.Team.InCharge, userID):
		return domain.ReviewRoleInCharge
	case contains(e.Team.Staff, userID):
		return domain.ReviewRoleStaff
	}
	return ""
}

// Status derives the section review status. A section is reviewed as soon as
// the lead partner bucket is non-empty, regardless of the lower buckets:
// roles may contribute reviews in any order.
func Status(r *domain.SectionReviews) domain.SectionStatus {
	if len(r.LeadPartner) > 0 {
		return domain.SectionReviewed
	}
	if len(r.Staff) > 0 || len(r.InCharge) > 0 || len(r.Manager) > 0 || len(r.Partner) > 0 {
		return domain.SectionReadyForReview
	}
	return domain.SectionNotReviewed
}

// Level reports overall progression: completed only when all five buckets
// hold at least one entry, in_progress when any entry exists, else pending.
func Level(r *domain.SectionReviews) domain.ReviewLevel {
	if len(r.Staff) > 0 && len(r.InCharge) > 0 && len(r.Manager) > 0 &&
		len(r.Partner) > 0 && len(r.LeadPartner) > 0 {
		return domain.ReviewLevelCompleted
	}
	if Status(r) == domain.SectionNotReviewed {
		return domain.ReviewLevelPending
	}
	return domain.ReviewLevelInProgress
}

// CanReview reports whether a user may add a review entry. Privileged users
// may always review; otherwise the derived role must be one of the five
// reviewer roles. There is deliberately no duplicate check: the review log is
// append-only.
func CanReview(role domain.ReviewRole, privileged bool) bool {
	if privileged {
		return true
	}
	return roleRank(role) >= 0
}

// CanUnreview reports whether the caller may remove a specific entry.
// Privileged users may remove anything. A non-privileged user may never
// remove their own entry, and may only remove entries recorded under a role
// strictly below their own.
func CanUnreview(callerID uuid.UUID, callerRole domain.ReviewRole, privileged bool, entry domain.ReviewEntry) bool {
	if privileged {
		return true
	}
	if entry.UserID == callerID {
		return false
	}
	callerRank := roleRank(callerRole)
	entryRank := roleRank(entry.Role)
	return callerRank >= 0 && entryRank >= 0 && callerRank > entryRank
}

// IndicatorFor derives the four-color sidebar indicator for a viewer.
// Precedence: green (all five buckets non-empty), blue (the viewer's role
// bucket is non-empty, or the viewer contributed an entry in any bucket),
// orange (viewer is eligible but has not reviewed), grey otherwise. The
// by-id check matters for privileged viewers: their entries land in a
// bucket their derived role does not point at.
func IndicatorFor(r *domain.SectionReviews, viewerID uuid.UUID, viewerRole domain.ReviewRole, privileged bool) domain.Indicator {
	if Level(r) == domain.ReviewLevelCompleted {
		return domain.IndicatorGreen
	}
	if len(r.Bucket(viewerRole)) > 0 || hasEntryBy(r, viewerID) {
		return domain.IndicatorBlue
	}
	if CanReview(viewerRole, privileged) {
		return domain.IndicatorOrange
	}
	return domain.IndicatorGrey
}

// hasEntryBy reports whether the user contributed an entry in any bucket.
func hasEntryBy(r *domain.SectionReviews, userID uuid.UUID) bool {
	for _, role := range domain.ReviewRoleHierarchy {
		for _, e := range r.Bucket(role) {
			if e.UserID == userID {
				return true
			}
		}
	}
	return false
}

// CanSignOff reports whether a user may sign off a section, given the
// section's configured sign-off level. Sign-off is a coarser gate than
// role-based review: any role at or above the required level qualifies.
func CanSignOff(role domain.ReviewRole, privileged bool, level domain.SignOffLevel) bool {
	if privileged {
		return true
	}
	rank := roleRank(role)
	if rank < 0 {
		return false
	}
	switch level {
	case domain.SignOffLevelInCharge:
		return rank >= roleRank(domain.ReviewRoleInCharge)
	case domain.SignOffLevelManager:
		return rank >= roleRank(domain.ReviewRoleManager)
	}
	return false
}

// SectionSummary is the derived view of one section for one viewer.
type SectionSummary struct {
	Status    domain.SectionStatus  `json:"status"`
	Level     domain.ReviewLevel    `json:"current_review_level"`
	Indicator domain.Indicator      `json:"indicator"`
	Reviews   domain.SectionReviews `json:"reviews"`
}

// Summarize computes the full derived view of a section for a viewer.
func Summarize(r *domain.SectionReviews, viewerID uuid.UUID, viewerRole domain.ReviewRole, privileged bool) SectionSummary {
	return SectionSummary{
		Status:    Status(r),
		Level:     Level(r),
		Indicator: IndicatorFor(r, viewerID, viewerRole, privileged),
		Reviews:   *r,
	}
}
