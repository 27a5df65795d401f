package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) error
	// MarkOverdue flips every sent invoice with a due date before asOf to
	// overdue, across all tenants, and returns how many rows changed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int, error)
	Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error
}

// QuoteRepository defines the contract for quote persistence.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, tenantID, quoteID uuid.UUID) (*domain.Quote, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.QuoteStatus, offset, limit int) ([]domain.Quote, int, error)
	Update(ctx context.Context, q *domain.Quote) error
	UpdateStatus(ctx context.Context, tenantID, quoteID uuid.UUID, status domain.QuoteStatus) error
	Delete(ctx context.Context, tenantID, quoteID uuid.UUID) error
}
