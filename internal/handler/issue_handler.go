package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/middleware"
	"auditdesk/internal/service"
)

// IssueHandler handles issue board and sprint endpoints.
type IssueHandler struct {
	issueService service.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// Create handles POST /api/v1/issues
func (h *IssueHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateIssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	issue, err := h.issueService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, issue)
}

// List handles GET /api/v1/issues
// Supports ?status= and ?sprint_id= filters.
func (h *IssueHandler) List(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var status *domain.IssueStatus
	if s := c.Query("status"); s != "" {
		st := domain.IssueStatus(s)
		status = &st
	}

	var sprintID *uuid.UUID
	if s := c.Query("sprint_id"); s != "" {
		id, parseErr := uuid.Parse(s)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sprint ID")
			return
		}
		sprintID = &id
	}

	issues, total, err := h.issueService.List(c.Request.Context(), tenantID, status, sprintID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, issues, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Board handles GET /api/v1/issues/board
func (h *IssueHandler) Board(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	var sprintID *uuid.UUID
	if s := c.Query("sprint_id"); s != "" {
		id, parseErr := uuid.Parse(s)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sprint ID")
			return
		}
		sprintID = &id
	}

	columns, err := h.issueService.Board(c.Request.Context(), tenantID, sprintID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, columns)
}

// GetByID handles GET /api/v1/issues/:id
func (h *IssueHandler) GetByID(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid issue ID")
		return
	}

	issue, err := h.issueService.GetByID(c.Request.Context(), tenantID, issueID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issue)
}

// Update handles PUT /api/v1/issues/:id
func (h *IssueHandler) Update(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid issue ID")
		return
	}

	var input service.UpdateIssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	issue, err := h.issueService.Update(c.Request.Context(), tenantID, issueID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issue)
}

// Move handles POST /api/v1/issues/:id/move
func (h *IssueHandler) Move(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid issue ID")
		return
	}

	var input struct {
		Status domain.IssueStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.issueService.Move(c.Request.Context(), tenantID, issueID, input.Status); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "issue moved"})
}

// AssignSprint handles POST /api/v1/issues/:id/sprint
// A null sprint_id moves the issue back to the backlog pool.
func (h *IssueHandler) AssignSprint(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid issue ID")
		return
	}

	var input struct {
		SprintID *uuid.UUID `json:"sprint_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.issueService.AssignSprint(c.Request.Context(), tenantID, issueID, input.SprintID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "issue sprint updated"})
}

// Delete handles DELETE /api/v1/issues/:id
func (h *IssueHandler) Delete(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	issueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid issue ID")
		return
	}

	if err := h.issueService.Delete(c.Request.Context(), tenantID, issueID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "issue deleted"})
}

// CreateSprint handles POST /api/v1/sprints
func (h *IssueHandler) CreateSprint(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	var input service.CreateSprintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sprint, err := h.issueService.CreateSprint(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sprint)
}

// ListSprints handles GET /api/v1/sprints
func (h *IssueHandler) ListSprints(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	sprints, err := h.issueService.ListSprints(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sprints)
}

// CloseSprint handles POST /api/v1/sprints/:id/close
func (h *IssueHandler) CloseSprint(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	sprintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sprint ID")
		return
	}

	sprint, err := h.issueService.CloseSprint(c.Request.Context(), tenantID, sprintID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sprint)
}

// DeleteSprint handles DELETE /api/v1/sprints/:id
func (h *IssueHandler) DeleteSprint(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	sprintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sprint ID")
		return
	}

	if err := h.issueService.DeleteSprint(c.Request.Context(), tenantID, sprintID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "sprint deleted"})
}
