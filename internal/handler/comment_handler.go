package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/middleware"
	"auditdesk/internal/service"
)

// CommentHandler handles section comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /api/v1/engagements/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	engagementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid engagement ID")
		return
	}

	var input service.CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), tenantID, engagementID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, comment)
}

// ListBySection handles GET /api/v1/engagements/:id/sections/:sectionID/comments
// Returns comments grouped into threads.
func (h *CommentHandler) ListBySection(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	engagementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid engagement ID")
		return
	}

	sectionID := c.Param("sectionID")

	threads, err := h.commentService.ListBySection(c.Request.Context(), tenantID, engagementID, sectionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, threads)
}

// ListUnresolved handles GET /api/v1/engagements/:id/comments/unresolved
func (h *CommentHandler) ListUnresolved(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	engagementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid engagement ID")
		return
	}

	comments, err := h.commentService.ListUnresolved(c.Request.Context(), tenantID, engagementID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comments)
}

// Resolve handles POST /api/v1/comments/:commentID/resolve
func (h *CommentHandler) Resolve(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("commentID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid comment ID")
		return
	}

	if err := h.commentService.Resolve(c.Request.Context(), tenantID, commentID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "comment resolved"})
}

// Reopen handles POST /api/v1/comments/:commentID/reopen
func (h *CommentHandler) Reopen(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("commentID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid comment ID")
		return
	}

	if err := h.commentService.Reopen(c.Request.Context(), tenantID, commentID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "comment reopened"})
}

// Delete handles DELETE /api/v1/comments/:commentID
// Deleting a thread root removes its replies as well.
func (h *CommentHandler) Delete(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("commentID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid comment ID")
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), tenantID, commentID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "comment deleted"})
}
