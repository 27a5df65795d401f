package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/middleware"
	"auditdesk/internal/service"
)

// COAHandler handles chart-of-accounts endpoints.
type COAHandler struct {
	coaService service.COAService
}

// NewCOAHandler creates a new COAHandler.
func NewCOAHandler(coaService service.COAService) *COAHandler {
	return &COAHandler{coaService: coaService}
}

// Import handles POST /api/v1/engagements/:id/accounts/import
// Accepts a plan comptable text export as a multipart file.
func (h *COAHandler) Import(c *gin.Context) {
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

	knowledgeBaseID := c.PostForm("knowledge_base_id")
	if knowledgeBaseID == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "knowledge_base_id field is required")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	accounts, err := h.coaService.ImportText(c.Request.Context(), tenantID, engagementID, knowledgeBaseID, file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"imported": len(accounts), "accounts": accounts})
}

// List handles GET /api/v1/engagements/:id/accounts
func (h *COAHandler) List(c *gin.Context) {
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

	accounts, err := h.coaService.List(c.Request.Context(), tenantID, engagementID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, accounts)
}

// Delete handles DELETE /api/v1/engagements/:id/accounts
func (h *COAHandler) Delete(c *gin.Context) {
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

	if err := h.coaService.Delete(c.Request.Context(), tenantID, engagementID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "chart of accounts deleted"})
}
