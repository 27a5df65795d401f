package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// LineItemInput is the DTO for a billed line.
type LineItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceInput is the DTO for creating an invoice.
type CreateInvoiceInput struct {
	EngagementID uuid.UUID       `json:"engagement_id" binding:"required"`
	Lines        []LineItemInput `json:"lines" binding:"required,min=1"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      time.Time       `json:"due_date" binding:"required"`
}

// CreateQuoteInput is the DTO for creating a quote.
type CreateQuoteInput struct {
	EngagementID uuid.UUID       `json:"engagement_id" binding:"required"`
	Lines        []LineItemInput `json:"lines" binding:"required,min=1"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	ValidUntil   time.Time       `json:"valid_until" binding:"required"`
}

// InvoiceService defines the billing contract: invoices, quotes, and the
// quote-to-invoice conversion.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error)
	SendInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) error
	MarkInvoicePaid(ctx context.Context, tenantID, invoiceID uuid.UUID) error
	DeleteInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) error
	// MarkOverdueInvoices is the scheduled sweep: sent invoices past their due
	// date become overdue.
	MarkOverdueInvoices(ctx context.Context) (int, error)

	CreateQuote(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateQuoteInput) (*domain.Quote, error)
	GetQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*domain.Quote, error)
	ListQuotes(ctx context.Context, tenantID uuid.UUID, status *domain.QuoteStatus, offset, limit int) ([]domain.Quote, int, error)
	UpdateQuoteStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status domain.QuoteStatus) error
	// ConvertQuote turns an accepted quote into a draft invoice carrying the
	// same lines and totals.
	ConvertQuote(ctx context.Context, tenantID, quoteID, userID uuid.UUID, dueDate time.Time) (*domain.Invoice, error)
	DeleteQuote(ctx context.Context, tenantID, quoteID uuid.UUID) error
}

type invoiceService struct {
	invoices    port.InvoiceRepository
	quotes      port.QuoteRepository
	engagements port.EngagementRepository
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoices port.InvoiceRepository,
	quotes port.QuoteRepository,
	engagements port.EngagementRepository,
) InvoiceService {
	return &invoiceService{
		invoices:    invoices,
		quotes:      quotes,
		engagements: engagements,
	}
}

// computeTotals sums line amounts and applies the tax rate (a fraction, e.g.
// 0.20). Decimal arithmetic throughout; rounding to cents happens once, on
// the computed totals.
func computeTotals(lines domain.LineItems, taxRate decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount())
	}
	subtotal = subtotal.Round(2)
	total = subtotal.Add(subtotal.Mul(taxRate)).Round(2)
	return subtotal, total
}

func toLineItems(inputs []LineItemInput) domain.LineItems {
	lines := make(domain.LineItems, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, domain.LineItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		})
	}
	return lines
}

func (s *invoiceService) CreateInvoice(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	if _, err := s.engagements.GetByID(ctx, tenantID, input.EngagementID); err != nil {
		return nil, err
	}

	lines := toLineItems(input.Lines)
	subtotal, total := computeTotals(lines, input.TaxRate)

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now().UTC()
	}

	inv := &domain.Invoice{
		TenantID:     tenantID,
		EngagementID: input.EngagementID,
		Number:       numberFor("INV", issueDate),
		Status:       domain.InvoiceStatusDraft,
		Lines:        lines,
		Subtotal:     subtotal,
		TaxRate:      input.TaxRate,
		Total:        total,
		IssueDate:    issueDate,
		DueDate:      input.DueDate,
		CreatedBy:    createdBy,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoices.ListByTenant(ctx, tenantID, status, offset, limit)
}

func (s *invoiceService) SendInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	return s.invoices.UpdateStatus(ctx, tenantID, invoiceID, domain.InvoiceStatusSent)
}

func (s *invoiceService) MarkInvoicePaid(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	return s.invoices.UpdateStatus(ctx, tenantID, invoiceID, domain.InvoiceStatusPaid)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	return s.invoices.Delete(ctx, tenantID, invoiceID)
}

func (s *invoiceService) MarkOverdueInvoices(ctx context.Context) (int, error) {
	n, err := s.invoices.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("invoiceService: marked %d invoices overdue", n)
	}
	return n, nil
}

func (s *invoiceService) CreateQuote(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateQuoteInput) (*domain.Quote, error) {
	if _, err := s.engagements.GetByID(ctx, tenantID, input.EngagementID); err != nil {
		return nil, err
	}

	lines := toLineItems(input.Lines)
	subtotal, total := computeTotals(lines, input.TaxRate)

	q := &domain.Quote{
		TenantID:     tenantID,
		EngagementID: input.EngagementID,
		Number:       numberFor("QUO", time.Now().UTC()),
		Status:       domain.QuoteStatusDraft,
		Lines:        lines,
		Subtotal:     subtotal,
		TaxRate:      input.TaxRate,
		Total:        total,
		ValidUntil:   input.ValidUntil,
		CreatedBy:    createdBy,
	}
	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *invoiceService) GetQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, tenantID, quoteID)
}

func (s *invoiceService) ListQuotes(ctx context.Context, tenantID uuid.UUID, status *domain.QuoteStatus, offset, limit int) ([]domain.Quote, int, error) {
	return s.quotes.ListByTenant(ctx, tenantID, status, offset, limit)
}

func (s *invoiceService) UpdateQuoteStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status domain.QuoteStatus) error {
	return s.quotes.UpdateStatus(ctx, tenantID, quoteID, status)
}

func (s *invoiceService) ConvertQuote(ctx context.Context, tenantID, quoteID, userID uuid.UUID, dueDate time.Time) (*domain.Invoice, error) {
	q, err := s.quotes.GetByID(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.QuoteStatusAccepted {
		return nil, domain.ErrQuoteNotAccepted
	}

	now := time.Now().UTC()
	inv := &domain.Invoice{
		TenantID:     tenantID,
		EngagementID: q.EngagementID,
		Number:       numberFor("INV", now),
		Status:       domain.InvoiceStatusDraft,
		Lines:        q.Lines,
		Subtotal:     q.Subtotal,
		TaxRate:      q.TaxRate,
		Total:        q.Total,
		IssueDate:    now,
		DueDate:      dueDate,
		CreatedBy:    userID,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) DeleteQuote(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	return s.quotes.Delete(ctx, tenantID, quoteID)
}

// numberFor builds a human-readable document number. Uniqueness comes from
// the uuid suffix, not the date part.
func numberFor(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, t.Format("20060102"), uuid.New().String()[:8])
}
