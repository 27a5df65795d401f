package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta is pagination metadata attached to list responses.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK writes a 200 response with the given data.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated writes a 201 response with the given data.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated writes a 200 response with data and pagination meta.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// RespondError writes an error response with the given status and code.
func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// MapDomainError translates domain errors to HTTP status codes and API codes.
func MapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "insufficient permissions"
	case errors.Is(err, domain.ErrTenantInactive):
		return http.StatusForbidden, "TENANT_INACTIVE", "tenant account is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user account is inactive"
	case errors.Is(err, domain.ErrNotReviewer):
		return http.StatusForbidden, "NOT_REVIEWER", "user has no reviewing role on this engagement"
	case errors.Is(err, domain.ErrUnreviewDenied):
		return http.StatusForbidden, "UNREVIEW_DENIED", "insufficient role to remove this review entry"
	case errors.Is(err, domain.ErrSignOffDenied):
		return http.StatusForbidden, "SIGNOFF_DENIED", "insufficient role to sign off this section"
	case errors.Is(err, domain.ErrNotCommentParty):
		return http.StatusForbidden, "NOT_COMMENT_PARTY", "only the author or addressee may resolve this comment"
	case errors.Is(err, domain.ErrEngagementNotFound):
		return http.StatusNotFound, "ENGAGEMENT_NOT_FOUND", "engagement not found"
	case errors.Is(err, domain.ErrSectionNotFound):
		return http.StatusNotFound, "SECTION_NOT_FOUND", "section not found"
	case errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound, "REVIEW_NOT_FOUND", "review entry not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "COMMENT_NOT_FOUND", "comment not found"
	case errors.Is(err, domain.ErrIssueNotFound):
		return http.StatusNotFound, "ISSUE_NOT_FOUND", "issue not found"
	case errors.Is(err, domain.ErrSprintNotFound):
		return http.StatusNotFound, "SPRINT_NOT_FOUND", "sprint not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrQuoteNotFound):
		return http.StatusNotFound, "QUOTE_NOT_FOUND", "quote not found"
	case errors.Is(err, domain.ErrBalancesNotFound):
		return http.StatusNotFound, "BALANCES_NOT_FOUND", "no balances have been imported for this engagement"
	case errors.Is(err, domain.ErrImportNotFound):
		return http.StatusNotFound, "IMPORT_NOT_FOUND", "balance import not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrNestedReply):
		return http.StatusBadRequest, "NESTED_REPLY", "replies to replies are not allowed"
	case errors.Is(err, domain.ErrQuoteNotAccepted):
		return http.StatusBadRequest, "QUOTE_NOT_ACCEPTED", "only accepted quotes can be converted to invoices"
	case errors.Is(err, domain.ErrMissingEngagement):
		return http.StatusBadRequest, "MISSING_ENGAGEMENT", "engagement_id is required for balance workbooks"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "INVALID_ROLE", "invalid user role"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this tenant"
	case errors.Is(err, domain.ErrInvalidSlug):
		return http.StatusBadRequest, "INVALID_SLUG", "tenant slug has no usable characters"
	case errors.Is(err, domain.ErrDuplicateTenantSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "tenant slug already exists"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and writes the response. Internal errors
// are logged with the request ID.
func HandleError(c *gin.Context, err error) {
	status, code, message := MapDomainError(err)
	if status >= http.StatusInternalServerError {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, message)
}

// extractAuthContext pulls tenant and user identity from the request context.
// It writes a 401 response and returns ok=false if the context is missing.
func extractAuthContext(c *gin.Context) (tenantID, userID uuid.UUID, role string, ok bool) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return uuid.Nil, uuid.Nil, "", false
	}
	return tenantID, userID, middleware.GetRole(c), true
}
