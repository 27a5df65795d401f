package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail      = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug = errors.New("tenant slug already exists")
	ErrInvalidSlug         = errors.New("tenant slug has no usable characters")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidRole         = errors.New("invalid user role")

	ErrEngagementNotFound = errors.New("engagement not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrNotReviewer        = errors.New("user has no reviewing role on this engagement")
	ErrUnreviewDenied     = errors.New("insufficient role to remove this review entry")
	ErrSignOffDenied      = errors.New("insufficient role to sign off this section")
	ErrReviewNotFound     = errors.New("review entry not found")

	ErrCommentNotFound   = errors.New("comment not found")
	ErrNestedReply       = errors.New("replies to replies are not allowed")
	ErrNotCommentParty   = errors.New("only the author or addressee may resolve this comment")
	ErrIssueNotFound     = errors.New("issue not found")
	ErrSprintNotFound    = errors.New("sprint not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrQuoteNotAccepted  = errors.New("only accepted quotes can be converted to invoices")
	ErrBalancesNotFound  = errors.New("no balances have been imported for this engagement")
	ErrImportNotFound    = errors.New("balance import not found")
	ErrMissingEngagement = errors.New("engagement_id is required for balance workbooks")
)
