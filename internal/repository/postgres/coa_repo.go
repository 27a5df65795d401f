package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// coaBatchSize caps a single multi-row upsert statement.
const coaBatchSize = 400

type coaRepo struct {
	db *sqlx.DB
}

// NewCOARepo creates a new PostgreSQL-backed COARepository.
func NewCOARepo(db *sqlx.DB) port.COARepository {
	return &coaRepo{db: db}
}

func (r *coaRepo) BatchUpsert(ctx context.Context, accounts []domain.ChartOfAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	query := `INSERT INTO chart_of_accounts (id, tenant_id, engagement_id, knowledge_base_id, code, label, class, type, parent_code, created_at)
		VALUES (:id, :tenant_id, :engagement_id, :knowledge_base_id, :code, :label, :class, :type, :parent_code, :created_at)
		ON CONFLICT (engagement_id, code) DO UPDATE SET
			label = EXCLUDED.label,
			class = EXCLUDED.class,
			type = EXCLUDED.type,
			parent_code = EXCLUDED.parent_code,
			knowledge_base_id = EXCLUDED.knowledge_base_id`

	for start := 0; start < len(accounts); start += coaBatchSize {
		end := start + coaBatchSize
		if end > len(accounts) {
			end = len(accounts)
		}
		if _, err := r.db.NamedExecContext(ctx, query, accounts[start:end]); err != nil {
			return fmt.Errorf("coaRepo.BatchUpsert batch %d: %w", start/coaBatchSize, err)
		}
	}
	return nil
}

func (r *coaRepo) UpsertDocument(ctx context.Context, doc *domain.COADocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	query := `INSERT INTO coa_documents (id, tenant_id, engagement_id, knowledge_base_id, kind, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (engagement_id, knowledge_base_id, kind) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = now()`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.TenantID, doc.EngagementID, doc.KnowledgeBaseID, doc.Kind, doc.Payload)
	if err != nil {
		return fmt.Errorf("coaRepo.UpsertDocument: %w", err)
	}
	return nil
}

func (r *coaRepo) GetDocument(ctx context.Context, tenantID, engagementID uuid.UUID, kind domain.COADocKind) (*domain.COADocument, error) {
	var doc domain.COADocument
	err := r.db.GetContext(ctx, &doc,
		`SELECT * FROM coa_documents
		WHERE tenant_id = $1 AND engagement_id = $2 AND kind = $3
		ORDER BY updated_at DESC LIMIT 1`,
		tenantID, engagementID, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("coaRepo.GetDocument: %w", err)
	}
	return &doc, nil
}

func (r *coaRepo) ListByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ChartOfAccount, error) {
	var accounts []domain.ChartOfAccount
	err := r.db.SelectContext(ctx, &accounts,
		"SELECT * FROM chart_of_accounts WHERE tenant_id = $1 AND engagement_id = $2 ORDER BY code",
		tenantID, engagementID)
	if err != nil {
		return nil, fmt.Errorf("coaRepo.ListByEngagement: %w", err)
	}
	return accounts, nil
}

func (r *coaRepo) DeleteByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM chart_of_accounts WHERE tenant_id = $1 AND engagement_id = $2",
		tenantID, engagementID)
	if err != nil {
		return fmt.Errorf("coaRepo.DeleteByEngagement: %w", err)
	}
	return nil
}
