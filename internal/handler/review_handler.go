package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/service"
)

// ReviewHandler handles section review, sign-off, and overview endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func reviewParams(c *gin.Context) (tenantID, engagementID, userID uuid.UUID, sectionID string, ok bool) {
	tenantID, userID, _, ok = extractAuthContext(c)
	if !ok {
		return
	}

	engagementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid engagement ID")
		return tenantID, engagementID, userID, "", false
	}

	sectionID = c.Param("sectionID")
	return tenantID, engagementID, userID, sectionID, true
}

// Review handles POST /api/v1/engagements/:id/sections/:sectionID/review
func (h *ReviewHandler) Review(c *gin.Context) {
	tenantID, engagementID, userID, sectionID, ok := reviewParams(c)
	if !ok {
		return
	}

	summary, err := h.reviewService.Review(c.Request.Context(), tenantID, engagementID, sectionID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, summary)
}

// Unreview handles DELETE /api/v1/engagements/:id/reviews/:reviewID
func (h *ReviewHandler) Unreview(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	engagementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid engagement ID")
		return
	}

	entryID, err := uuid.Parse(c.Param("reviewID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review ID")
		return
	}

	if err := h.reviewService.Unreview(c.Request.Context(), tenantID, engagementID, entryID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "review removed"})
}

// SectionSummary handles GET /api/v1/engagements/:id/sections/:sectionID/summary
func (h *ReviewHandler) SectionSummary(c *gin.Context) {
	tenantID, engagementID, userID, sectionID, ok := reviewParams(c)
	if !ok {
		return
	}

	view, err := h.reviewService.SectionSummary(c.Request.Context(), tenantID, engagementID, sectionID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Overview handles GET /api/v1/engagements/:id/overview
func (h *ReviewHandler) Overview(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	engagementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid engagement ID")
		return
	}

	views, err := h.reviewService.EngagementOverview(c.Request.Context(), tenantID, engagementID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, views)
}

// SignOff handles POST /api/v1/engagements/:id/sections/:sectionID/signoff
func (h *ReviewHandler) SignOff(c *gin.Context) {
	tenantID, engagementID, userID, sectionID, ok := reviewParams(c)
	if !ok {
		return
	}

	if err := h.reviewService.SignOff(c.Request.Context(), tenantID, engagementID, sectionID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "section signed off"})
}

// RemoveSignOff handles DELETE /api/v1/engagements/:id/sections/:sectionID/signoff
func (h *ReviewHandler) RemoveSignOff(c *gin.Context) {
	tenantID, engagementID, userID, sectionID, ok := reviewParams(c)
	if !ok {
		return
	}

	if err := h.reviewService.RemoveSignOff(c.Request.Context(), tenantID, engagementID, sectionID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "sign-off removed"})
}
