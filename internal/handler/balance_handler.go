package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/middleware"
	"auditdesk/internal/service"
)

// maxPreviewSize bounds synchronous workbook previews.
const maxPreviewSize = 25 << 20

// BalanceHandler handles trial balance endpoints.
type BalanceHandler struct {
	balanceService service.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceService service.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// Preview handles POST /api/v1/balances/preview
// Parses an uploaded workbook synchronously without persisting anything.
func (h *BalanceHandler) Preview(c *gin.Context) {
	if _, err := middleware.GetTenantID(c); err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxPreviewSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "workbook exceeds preview size limit")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file")
		return
	}

	result, err := h.balanceService.Preview(c.Request.Context(), data)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "PARSE_FAILED", err.Error())
		return
	}

	RespondOK(c, result)
}

// Get handles GET /api/v1/engagements/:id/balances
func (h *BalanceHandler) Get(c *gin.Context) {
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

	set, err := h.balanceService.GetByEngagement(c.Request.Context(), tenantID, engagementID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, set)
}

// Enqueue handles POST /api/v1/engagements/:id/balances/imports
func (h *BalanceHandler) Enqueue(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	engagementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid engagement ID")
		return
	}

	var input struct {
		FileID uuid.UUID `json:"file_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	imp, err := h.balanceService.Enqueue(c.Request.Context(), tenantID, engagementID, input.FileID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, imp)
}

// GetImport handles GET /api/v1/balances/imports/:importID
func (h *BalanceHandler) GetImport(c *gin.Context) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return
	}

	importID, err := uuid.Parse(c.Param("importID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid import ID")
		return
	}

	imp, err := h.balanceService.GetImport(c.Request.Context(), tenantID, importID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, imp)
}

// ListImports handles GET /api/v1/engagements/:id/balances/imports
func (h *BalanceHandler) ListImports(c *gin.Context) {
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

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	imports, total, err := h.balanceService.ListImports(c.Request.Context(), tenantID, engagementID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, imports, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportCSV handles GET /api/v1/engagements/:id/balances/export
// Streams the balance comparison as a CSV attachment.
func (h *BalanceHandler) ExportCSV(c *gin.Context) {
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

	// Buffer the export so headers can still carry the filename and errors
	// can still produce a JSON body.
	var buf bytes.Buffer
	filename, err := h.balanceService.ExportCSV(c.Request.Context(), tenantID, engagementID, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
