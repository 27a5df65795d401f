package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"auditdesk/internal/coa"
	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// COAService defines the chart-of-accounts contract.
type COAService interface {
	// ImportText parses a plan comptable text export, builds the account
	// forest, and persists it for the engagement together with the template
	// and rule aggregate documents.
	ImportText(ctx context.Context, tenantID, engagementID uuid.UUID, knowledgeBaseID string, r io.Reader) ([]domain.ChartOfAccount, error)
	List(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ChartOfAccount, error)
	Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error
}

type coaService struct {
	accounts    port.COARepository
	engagements port.EngagementRepository
}

// NewCOAService creates a new COAService implementation.
func NewCOAService(accounts port.COARepository, engagements port.EngagementRepository) COAService {
	return &coaService{accounts: accounts, engagements: engagements}
}

func (s *coaService) ImportText(ctx context.Context, tenantID, engagementID uuid.UUID, knowledgeBaseID string, r io.Reader) ([]domain.ChartOfAccount, error) {
	if _, err := s.engagements.GetByID(ctx, tenantID, engagementID); err != nil {
		return nil, err
	}

	entries, err := coa.ParseText(r)
	if err != nil {
		return nil, fmt.Errorf("parsing chart of accounts: %w", err)
	}

	accounts := coa.BuildTree(tenantID, engagementID, knowledgeBaseID, entries)
	if err := s.accounts.BatchUpsert(ctx, accounts); err != nil {
		return nil, err
	}

	for _, doc := range coa.BuildDocuments(tenantID, engagementID, knowledgeBaseID, entries) {
		doc := doc
		if err := s.accounts.UpsertDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("writing %s document: %w", doc.Kind, err)
		}
	}
	return accounts, nil
}

func (s *coaService) List(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.ChartOfAccount, error) {
	return s.accounts.ListByEngagement(ctx, tenantID, engagementID)
}

func (s *coaService) Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	return s.accounts.DeleteByEngagement(ctx, tenantID, engagementID)
}
