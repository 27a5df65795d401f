package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/middleware"
	"auditdesk/internal/service"
)

// EngagementHandler handles engagement and section endpoints.
type EngagementHandler struct {
	engagementService service.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// Create handles POST /api/v1/engagements
func (h *EngagementHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateEngagementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	engagement, err := h.engagementService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, engagement)
}

// List handles GET /api/v1/engagements
// With ?mine=true only engagements where the caller is assigned are returned.
func (h *EngagementHandler) List(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
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

	var (
		engagements interface{}
		total       int
		err         error
	)
	if c.Query("mine") == "true" {
		engagements, total, err = h.engagementService.ListMine(c.Request.Context(), tenantID, userID, offset, limit)
	} else {
		engagements, total, err = h.engagementService.List(c.Request.Context(), tenantID, offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, engagements, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/engagements/:id
func (h *EngagementHandler) GetByID(c *gin.Context) {
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

	engagement, err := h.engagementService.GetByID(c.Request.Context(), tenantID, engagementID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, engagement)
}

// Update handles PUT /api/v1/engagements/:id
func (h *EngagementHandler) Update(c *gin.Context) {
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

	var input service.UpdateEngagementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	engagement, err := h.engagementService.Update(c.Request.Context(), tenantID, engagementID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, engagement)
}

// UpdateTeam handles PUT /api/v1/engagements/:id/team
func (h *EngagementHandler) UpdateTeam(c *gin.Context) {
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

	var input service.UpdateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	engagement, err := h.engagementService.UpdateTeam(c.Request.Context(), tenantID, engagementID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, engagement)
}

// Delete handles DELETE /api/v1/engagements/:id
func (h *EngagementHandler) Delete(c *gin.Context) {
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

	if err := h.engagementService.Delete(c.Request.Context(), tenantID, engagementID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "engagement deleted"})
}

// CreateSections handles POST /api/v1/engagements/:id/sections
// Accepts a list so an engagement's section plan can be seeded in one call.
func (h *EngagementHandler) CreateSections(c *gin.Context) {
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

	var inputs []service.CreateSectionInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if len(inputs) == 0 {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "at least one section is required")
		return
	}

	sections, err := h.engagementService.CreateSections(c.Request.Context(), tenantID, engagementID, inputs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sections)
}

// ListSections handles GET /api/v1/engagements/:id/sections
func (h *EngagementHandler) ListSections(c *gin.Context) {
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

	sections, err := h.engagementService.ListSections(c.Request.Context(), tenantID, engagementID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sections)
}

// DeleteSection handles DELETE /api/v1/engagements/:id/sections/:sectionID
func (h *EngagementHandler) DeleteSection(c *gin.Context) {
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
	if sectionID == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "section ID is required")
		return
	}

	if err := h.engagementService.DeleteSection(c.Request.Context(), tenantID, engagementID, sectionID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "section deleted"})
}
