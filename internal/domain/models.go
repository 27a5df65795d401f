package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents an isolated audit firm.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	JobTitle     string    `db:"job_title" json:"job_title"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsPrivileged reports whether the user bypasses engagement-level review and
// sign-off restrictions.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin
}

// TeamAssignments holds the engagement team as role-bucketed user id lists.
// Stored as a single JSONB column; a user may appear in more than one list,
// in which case the first matching bucket in the fixed check order wins.
type TeamAssignments struct {
	Staff       []uuid.UUID `json:"staff"`
	InCharge    []uuid.UUID `json:"in_charge"`
	Manager     []uuid.UUID `json:"manager"`
	Partner     []uuid.UUID `json:"partner"`
	LeadPartner []uuid.UUID `json:"lead_partner"`
}

// Value implements driver.Valuer for JSONB storage.
func (t TeamAssignments) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB storage.
func (t *TeamAssignments) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = TeamAssignments{}
		return nil
	default:
		return fmt.Errorf("unsupported type for TeamAssignments: %T", src)
	}
}

// Engagement represents an audit engagement (project).
type Engagement struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	TenantID        uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	Name            string           `db:"name" json:"name"`
	ClientName      string           `db:"client_name" json:"client_name"`
	FiscalYear      int              `db:"fiscal_year" json:"fiscal_year"`
	Status          EngagementStatus `db:"status" json:"status"`
	LeadDeveloperID *uuid.UUID       `db:"lead_developer_id" json:"lead_developer_id"`
	Team            TeamAssignments  `db:"team" json:"team"`
	CreatedBy       uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// Section is one reviewable section of an engagement's audit file.
type Section struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	TenantID     uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	EngagementID uuid.UUID    `db:"engagement_id" json:"engagement_id"`
	SectionID    string       `db:"section_id" json:"section_id"`
	Title        string       `db:"title" json:"title"`
	SignOffLevel SignOffLevel `db:"sign_off_level" json:"sign_off_level"`
	SignedOff    bool         `db:"signed_off" json:"signed_off"`
	SignedOffBy  *uuid.UUID   `db:"signed_off_by" json:"signed_off_by"`
	SignedOffAt  *time.Time   `db:"signed_off_at" json:"signed_off_at"`
	Position     int          `db:"position" json:"position"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// ReviewEntry is a single append-only review record contributed by a user
// acting in one of the five reviewer roles. Entries are never mutated in
// place; removal requires a strictly higher role or a privileged user.
type ReviewEntry struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	EngagementID uuid.UUID  `db:"engagement_id" json:"engagement_id"`
	SectionID    string     `db:"section_id" json:"section_id"`
	Role         ReviewRole `db:"role" json:"role"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	UserName     string     `db:"user_name" json:"user_name"`
	ReviewedAt   time.Time  `db:"reviewed_at" json:"reviewed_at"`
}

// SectionReviews groups a section's review entries by role bucket.
type SectionReviews struct {
	Staff       []ReviewEntry `json:"staff_reviews"`
	InCharge    []ReviewEntry `json:"incharge_reviews"`
	Manager     []ReviewEntry `json:"manager_reviews"`
	Partner     []ReviewEntry `json:"partner_reviews"`
	LeadPartner []ReviewEntry `json:"lead_partner_reviews"`
}

// Bucket returns the entries recorded under the given reviewer role.
func (r *SectionReviews) Bucket(role ReviewRole) []ReviewEntry {
	switch role {
	case ReviewRoleStaff:
		return r.Staff
	case ReviewRoleInCharge:
		return r.InCharge
	case ReviewRoleManager:
		return r.Manager
	case ReviewRolePartner:
		return r.Partner
	case ReviewRoleLeadPartner:
		return r.LeadPartner
	}
	return nil
}

// GroupReviews buckets flat review entries into a SectionReviews.
func GroupReviews(entries []ReviewEntry) SectionReviews {
	var r SectionReviews
	for _, e := range entries {
		switch e.Role {
		case ReviewRoleStaff:
			r.Staff = append(r.Staff, e)
		case ReviewRoleInCharge:
			r.InCharge = append(r.InCharge, e)
		case ReviewRoleManager:
			r.Manager = append(r.Manager, e)
		case ReviewRolePartner:
			r.Partner = append(r.Partner, e)
		case ReviewRoleLeadPartner:
			r.LeadPartner = append(r.LeadPartner, e)
		}
	}
	return r
}

// Comment is a one-level-deep threaded comment on a section field.
type Comment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	TenantID        uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	EngagementID    uuid.UUID  `db:"engagement_id" json:"engagement_id"`
	SectionID       string     `db:"section_id" json:"section_id"`
	FieldID         string     `db:"field_id" json:"field_id"`
	ParentCommentID *uuid.UUID `db:"parent_comment_id" json:"parent_comment_id"`
	AuthorID        uuid.UUID  `db:"author_id" json:"author_id"`
	AddressedTo     *uuid.UUID `db:"addressed_to" json:"addressed_to"`
	Content         string     `db:"content" json:"content"`
	Resolved        bool       `db:"resolved" json:"resolved"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// BalanceRow is a single parsed trial-balance row. Rows are positional and
// not deduplicated by account code.
type BalanceRow struct {
	Account string  `json:"account"`
	Label   string  `json:"label"`
	Balance float64 `json:"balance"`
}

// BalanceRows is a JSONB-stored slice of balance rows.
type BalanceRows []BalanceRow

// Value implements driver.Valuer for JSONB storage.
func (b BalanceRows) Value() (driver.Value, error) {
	if b == nil {
		b = BalanceRows{}
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB storage.
func (b *BalanceRows) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for BalanceRows: %T", src)
	}
}

// BalanceSet is the per-engagement balances record: current period (N) and
// prior period (N-1), written atomically in a single upsert.
type BalanceSet struct {
	EngagementID uuid.UUID     `db:"engagement_id" json:"engagement_id"`
	TenantID     uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	Status       BalanceStatus `db:"status" json:"status"`
	BalanceN     BalanceRows   `db:"balance_n" json:"balanceN"`
	BalanceN1    BalanceRows   `db:"balance_n1" json:"balanceN1"`
	ErrorMessage string        `db:"error_message" json:"errorMessage"`
	SourcePath   string        `db:"source_path" json:"sourcePath"`
	ParsedAt     time.Time     `db:"parsed_at" json:"parsedAt"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

// BalanceImport is a queued request to parse an uploaded workbook.
type BalanceImport struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	TenantID     uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	EngagementID uuid.UUID    `db:"engagement_id" json:"engagement_id"`
	FileID       uuid.UUID    `db:"file_id" json:"file_id"`
	Status       ImportStatus `db:"status" json:"status"`
	Attempts     int          `db:"attempts" json:"attempts"`
	ErrorMessage string       `db:"error_message" json:"error_message"`
	CreatedBy    uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// Issue is a card on the engagement board.
type Issue struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	TenantID     uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	EngagementID uuid.UUID     `db:"engagement_id" json:"engagement_id"`
	SprintID     *uuid.UUID    `db:"sprint_id" json:"sprint_id"`
	Title        string        `db:"title" json:"title"`
	Description  string        `db:"description" json:"description"`
	Status       IssueStatus   `db:"status" json:"status"`
	Priority     IssuePriority `db:"priority" json:"priority"`
	AssigneeID   *uuid.UUID    `db:"assignee_id" json:"assignee_id"`
	DueDate      *time.Time    `db:"due_date" json:"due_date"`
	CreatedBy    uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// Sprint is a time-boxed iteration on an engagement board.
type Sprint struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	EngagementID uuid.UUID `db:"engagement_id" json:"engagement_id"`
	Name         string    `db:"name" json:"name"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is a billed line on an invoice or quote.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount returns quantity times unit price.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// LineItems is a JSONB-stored slice of line items.
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for LineItems: %T", src)
	}
}

// Invoice bills an engagement's client.
type Invoice struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	TenantID     uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	EngagementID uuid.UUID       `db:"engagement_id" json:"engagement_id"`
	Number       string          `db:"number" json:"number"`
	Status       InvoiceStatus   `db:"status" json:"status"`
	Lines        LineItems       `db:"lines" json:"lines"`
	Subtotal     decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxRate      decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Total        decimal.Decimal `db:"total" json:"total"`
	IssueDate    time.Time       `db:"issue_date" json:"issue_date"`
	DueDate      time.Time       `db:"due_date" json:"due_date"`
	CreatedBy    uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Quote is a pre-engagement fee proposal. Accepted quotes convert to invoices.
type Quote struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	TenantID     uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	EngagementID uuid.UUID       `db:"engagement_id" json:"engagement_id"`
	Number       string          `db:"number" json:"number"`
	Status       QuoteStatus     `db:"status" json:"status"`
	Lines        LineItems       `db:"lines" json:"lines"`
	Subtotal     decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxRate      decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Total        decimal.Decimal `db:"total" json:"total"`
	ValidUntil   time.Time       `db:"valid_until" json:"valid_until"`
	CreatedBy    uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// ChartOfAccount is one node of the account-code forest. ParentCode, when
// present, is the longest proper numeric prefix of Code that exists in the
// same knowledge base.
type ChartOfAccount struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	TenantID        uuid.UUID   `db:"tenant_id" json:"tenant_id"`
	EngagementID    uuid.UUID   `db:"engagement_id" json:"engagement_id"`
	KnowledgeBaseID string      `db:"knowledge_base_id" json:"knowledge_base_id"`
	Code            string      `db:"code" json:"code"`
	Label           string      `db:"label" json:"label"`
	Class           int         `db:"class" json:"class"`
	Type            AccountType `db:"type" json:"type"`
	ParentCode      *string     `db:"parent_code" json:"parent_code"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
}

// JSONDoc is a free-form JSONB-stored document payload.
type JSONDoc map[string]interface{}

// Value implements driver.Valuer for JSONB storage.
func (d JSONDoc) Value() (driver.Value, error) {
	if d == nil {
		d = JSONDoc{}
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage.
func (d *JSONDoc) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for JSONDoc: %T", src)
	}
}

// COADocument is one of the two aggregate documents written alongside a
// chart-of-accounts import, keyed on (engagement, knowledge base, kind).
type COADocument struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	TenantID        uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	EngagementID    uuid.UUID  `db:"engagement_id" json:"engagement_id"`
	KnowledgeBaseID string     `db:"knowledge_base_id" json:"knowledge_base_id"`
	Kind            COADocKind `db:"kind" json:"kind"`
	Payload         JSONDoc    `db:"payload" json:"payload"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded file.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	EngagementID *uuid.UUID `db:"engagement_id" json:"engagement_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
