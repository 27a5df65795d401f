package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypeXLSM FileType = "xlsm"
	FileTypePDF  FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeXLSM: "application/vnd.ms-excel.sheet.macroEnabled.12",
	FileTypePDF:  "application/pdf",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xlsm": FileTypeXLSM,
	"pdf":  FileTypePDF,
}

// AllowedContentTypes lists the magic-byte detections accepted at upload.
// Office workbooks are zip containers, so xlsm detects as application/zip.
var AllowedContentTypes = map[string]bool{
	"application/zip": true,
	"application/pdf": true,
}

// UserRole defines the firm-wide role. Admins are privileged: they bypass
// engagement-level review and sign-off restrictions.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles guards role values arriving from clients.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// ReviewRole is an engagement-scoped role derived from team assignments.
type ReviewRole string

const (
	ReviewRoleStaff         ReviewRole = "staff"
	ReviewRoleInCharge      ReviewRole = "in_charge"
	ReviewRoleManager       ReviewRole = "manager"
	ReviewRolePartner       ReviewRole = "partner"
	ReviewRoleLeadPartner   ReviewRole = "lead_partner"
	ReviewRoleLeadDeveloper ReviewRole = "lead_developer"
)

// ReviewRoleHierarchy lists the reviewer roles from lowest to highest
// authority. lead_developer is deliberately absent: it can be assigned but
// cannot review.
var ReviewRoleHierarchy = []ReviewRole{
	ReviewRoleStaff,
	ReviewRoleInCharge,
	ReviewRoleManager,
	ReviewRolePartner,
	ReviewRoleLeadPartner,
}

// SectionStatus is the derived review status of a section.
type SectionStatus string

const (
	SectionNotReviewed    SectionStatus = "not_reviewed"
	SectionReadyForReview SectionStatus = "ready_for_review"
	SectionReviewed       SectionStatus = "reviewed"
)

// ReviewLevel tracks overall progression of a section through all five
// reviewer roles. Distinct from SectionStatus, which only checks lead_partner.
type ReviewLevel string

const (
	ReviewLevelPending    ReviewLevel = "pending"
	ReviewLevelInProgress ReviewLevel = "in_progress"
	ReviewLevelCompleted  ReviewLevel = "completed"
)

// Indicator is the per-section, per-viewer color shown in the sidebar.
type Indicator string

const (
	IndicatorGreen  Indicator = "green"
	IndicatorBlue   Indicator = "blue"
	IndicatorOrange Indicator = "orange"
	IndicatorGrey   Indicator = "grey"
)

// SignOffLevel is the minimum engagement role required to sign off a section.
type SignOffLevel string

const (
	SignOffLevelInCharge SignOffLevel = "incharge"
	SignOffLevelManager  SignOffLevel = "manager"
)

// ImportStatus is the lifecycle of a queued balance workbook import.
type ImportStatus string

const (
	ImportStatusQueued     ImportStatus = "queued"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusDone       ImportStatus = "done"
	ImportStatusError      ImportStatus = "error"
)

// BalanceStatus is the state of an engagement's persisted balances record.
type BalanceStatus string

const (
	BalanceStatusDone  BalanceStatus = "done"
	BalanceStatusError BalanceStatus = "error"
)

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// EngagementStatus is the lifecycle of an audit engagement.
type EngagementStatus string

const (
	EngagementStatusPlanning  EngagementStatus = "planning"
	EngagementStatusFieldwork EngagementStatus = "fieldwork"
	EngagementStatusReview    EngagementStatus = "review"
	EngagementStatusArchived  EngagementStatus = "archived"
)

// IssueStatus is a board column.
type IssueStatus string

const (
	IssueStatusBacklog    IssueStatus = "backlog"
	IssueStatusTodo       IssueStatus = "todo"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusInReview   IssueStatus = "in_review"
	IssueStatusDone       IssueStatus = "done"
)

// BoardColumns lists the board columns in display order.
var BoardColumns = []IssueStatus{
	IssueStatusBacklog,
	IssueStatusTodo,
	IssueStatusInProgress,
	IssueStatusInReview,
	IssueStatusDone,
}

// IssuePriority ranks issues on the board.
type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
	IssuePriorityUrgent IssuePriority = "urgent"
)

// InvoiceStatus is the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// QuoteStatus is the lifecycle of a quote.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

// AccountType classifies a chart-of-accounts entry.
type AccountType string

const (
	AccountTypeBalanceSheet    AccountType = "BS"
	AccountTypeIncomeStatement AccountType = "IS"
)

// COADocKind names the two aggregate documents derived from a chart-of-accounts
// import: the section template and the classification rule set.
type COADocKind string

const (
	COADocTemplate COADocKind = "template"
	COADocRules    COADocKind = "rules"
)
