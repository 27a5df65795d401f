package port

import (
	"context"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
)

// BalanceRepository defines the contract for trial-balance persistence.
// There is at most one balance set per engagement; Upsert replaces it whole.
type BalanceRepository interface {
	Upsert(ctx context.Context, set *domain.BalanceSet) error
	GetByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.BalanceSet, error)
	Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error
}

// BalanceImportRepository defines the contract for the balance-import queue.
type BalanceImportRepository interface {
	Create(ctx context.Context, imp *domain.BalanceImport) error
	GetByID(ctx context.Context, tenantID, importID uuid.UUID) (*domain.BalanceImport, error)
	ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID, offset, limit int) ([]domain.BalanceImport, int, error)
	// ClaimQueued atomically moves up to limit queued imports to processing
	// and returns them. Safe to call from multiple workers.
	ClaimQueued(ctx context.Context, limit int) ([]domain.BalanceImport, error)
	MarkDone(ctx context.Context, importID uuid.UUID) error
	MarkError(ctx context.Context, importID uuid.UUID, message string) error
	// Requeue returns a failed import to the queue and bumps its attempt count.
	Requeue(ctx context.Context, importID uuid.UUID) error
}

// COARepository defines the contract for chart-of-accounts persistence.
type COARepository interface {
	// BatchUpsert writes accounts in batches keyed on (engagement, code).
	BatchUpsert(ctx context.Context, accounts []domain.ChartOfAccount) error
	// UpsertDocument writes an aggregate document keyed on
	// (engagement, knowledge base, kind), replacing any previous payload.
	UpsertDocument(ctx context.Context, doc *domain.COADocument) error
	GetDocument(ctx context.Context, tenantID, engagementID uuid.UUID, kind domain.COADocKind) (*domain.COADocument, error)
	ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ChartOfAccount, error)
	DeleteByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) error
}
