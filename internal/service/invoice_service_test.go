package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type invoiceFixture struct {
	invoices    *mocks.MockInvoiceRepo
	quotes      *mocks.MockQuoteRepo
	engagements *mocks.MockEngagementRepo
	svc         service.InvoiceService
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		invoices:    new(mocks.MockInvoiceRepo),
		quotes:      new(mocks.MockQuoteRepo),
		engagements: new(mocks.MockEngagementRepo),
	}
	f.svc = service.NewInvoiceService(f.invoices, f.quotes, f.engagements)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInvoiceService_CreateInvoice_ComputesTotals(t *testing.T) {
	f := newInvoiceFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	createdBy := uuid.New()

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).
		Return(&domain.Engagement{ID: engagementID}, nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.CreateInvoice(context.Background(), tenantID, createdBy, service.CreateInvoiceInput{
		EngagementID: engagementID,
		Lines: []service.LineItemInput{
			{Description: "Interim fieldwork", Quantity: dec("12.5"), UnitPrice: dec("140")},
			{Description: "Final review", Quantity: dec("3"), UnitPrice: dec("250")},
		},
		TaxRate: dec("0.20"),
		DueDate: time.Now().UTC().AddDate(0, 1, 0),
	})

	require.NoError(t, err)
	// 12.5*140 + 3*250 = 2500; 20% tax on top.
	assert.True(t, inv.Subtotal.Equal(dec("2500")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.Total.Equal(dec("3000")), "total %s", inv.Total)
	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
	assert.False(t, inv.IssueDate.IsZero())
}

func TestInvoiceService_CreateInvoice_RoundsToCents(t *testing.T) {
	f := newInvoiceFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).
		Return(&domain.Engagement{ID: engagementID}, nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.CreateInvoice(context.Background(), tenantID, uuid.New(), service.CreateInvoiceInput{
		EngagementID: engagementID,
		Lines: []service.LineItemInput{
			{Description: "Advisory", Quantity: dec("1"), UnitPrice: dec("99.995")},
		},
		TaxRate: dec("0.196"),
		DueDate: time.Now().UTC().AddDate(0, 0, 30),
	})

	require.NoError(t, err)
	assert.True(t, inv.Subtotal.Equal(dec("100")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.Total.Equal(dec("119.60")), "total %s", inv.Total)
}

func TestInvoiceService_ConvertQuote_RequiresAccepted(t *testing.T) {
	f := newInvoiceFixture()
	tenantID := uuid.New()
	quoteID := uuid.New()

	f.quotes.On("GetByID", mock.Anything, tenantID, quoteID).Return(&domain.Quote{
		ID:     quoteID,
		Status: domain.QuoteStatusSent,
	}, nil)

	_, err := f.svc.ConvertQuote(context.Background(), tenantID, quoteID, uuid.New(), time.Now().AddDate(0, 1, 0))

	assert.ErrorIs(t, err, domain.ErrQuoteNotAccepted)
	f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_ConvertQuote_CopiesLinesAndTotals(t *testing.T) {
	f := newInvoiceFixture()
	tenantID := uuid.New()
	quoteID := uuid.New()
	engagementID := uuid.New()
	userID := uuid.New()
	dueDate := time.Now().UTC().AddDate(0, 1, 0)

	lines := domain.LineItems{
		{Description: "Statutory audit", Quantity: dec("1"), UnitPrice: dec("8000")},
	}
	f.quotes.On("GetByID", mock.Anything, tenantID, quoteID).Return(&domain.Quote{
		ID:           quoteID,
		TenantID:     tenantID,
		EngagementID: engagementID,
		Status:       domain.QuoteStatusAccepted,
		Lines:        lines,
		Subtotal:     dec("8000"),
		TaxRate:      dec("0.20"),
		Total:        dec("9600"),
	}, nil)
	f.invoices.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.EngagementID == engagementID &&
			inv.Status == domain.InvoiceStatusDraft &&
			len(inv.Lines) == 1 &&
			inv.Subtotal.Equal(dec("8000")) &&
			inv.Total.Equal(dec("9600")) &&
			inv.DueDate.Equal(dueDate) &&
			inv.CreatedBy == userID
	})).Return(nil)

	inv, err := f.svc.ConvertQuote(context.Background(), tenantID, quoteID, userID, dueDate)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
	f.invoices.AssertExpectations(t)
}

func TestInvoiceService_MarkOverdueInvoices(t *testing.T) {
	f := newInvoiceFixture()

	f.invoices.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(4, nil)

	n, err := f.svc.MarkOverdueInvoices(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4, n)
}
