package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"auditdesk/internal/balance"
	"auditdesk/internal/csvexport"
	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// BalanceService defines the trial-balance contract: synchronous previews,
// queued imports, stored balances, and CSV export.
type BalanceService interface {
	// Preview parses an uploaded workbook strictly, without persisting.
	// Renamed sheets are an error here so the client can warn the user.
	Preview(ctx context.Context, data []byte) (*balance.Result, error)
	// GetByEngagement returns the persisted balance set.
	GetByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.BalanceSet, error)
	// Enqueue queues a stored workbook for background parsing.
	Enqueue(ctx context.Context, tenantID, engagementID, fileID, userID uuid.UUID) (*domain.BalanceImport, error)
	// GetImport returns one import's queue state.
	GetImport(ctx context.Context, tenantID, importID uuid.UUID) (*domain.BalanceImport, error)
	// ListImports pages through an engagement's import history.
	ListImports(ctx context.Context, tenantID, engagementID uuid.UUID, offset, limit int) ([]domain.BalanceImport, int, error)
	// ProcessImport downloads, parses, and persists one claimed import.
	// Called by the ingest worker; maxRetries bounds requeue attempts.
	ProcessImport(ctx context.Context, imp *domain.BalanceImport, maxRetries int)
	// ExportCSV streams the balance comparison as CSV.
	ExportCSV(ctx context.Context, tenantID, engagementID uuid.UUID, w io.Writer) (string, error)
}

type balanceService struct {
	balances    port.BalanceRepository
	imports     port.BalanceImportRepository
	engagements port.EngagementRepository
	files       port.FileMetaRepository
	storage     port.ObjectStorage
}

// NewBalanceService creates a new BalanceService implementation.
func NewBalanceService(
	balances port.BalanceRepository,
	imports port.BalanceImportRepository,
	engagements port.EngagementRepository,
	files port.FileMetaRepository,
	storage port.ObjectStorage,
) BalanceService {
	return &balanceService{
		balances:    balances,
		imports:     imports,
		engagements: engagements,
		files:       files,
		storage:     storage,
	}
}

func (s *balanceService) Preview(_ context.Context, data []byte) (*balance.Result, error) {
	return balance.Parse(data, balance.Options{})
}

func (s *balanceService) GetByEngagement(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.BalanceSet, error) {
	return s.balances.GetByEngagement(ctx, tenantID, engagementID)
}

func (s *balanceService) Enqueue(ctx context.Context, tenantID, engagementID, fileID, userID uuid.UUID) (*domain.BalanceImport, error) {
	if _, err := s.engagements.GetByID(ctx, tenantID, engagementID); err != nil {
		return nil, err
	}
	meta, err := s.files.GetByID(ctx, tenantID, fileID)
	if err != nil {
		return nil, err
	}
	if meta.FileType != domain.FileTypeXLSM {
		return nil, domain.ErrUnsupportedFileType
	}

	imp := &domain.BalanceImport{
		TenantID:     tenantID,
		EngagementID: engagementID,
		FileID:       fileID,
		CreatedBy:    userID,
	}
	if err := s.imports.Create(ctx, imp); err != nil {
		return nil, err
	}
	return imp, nil
}

func (s *balanceService) GetImport(ctx context.Context, tenantID, importID uuid.UUID) (*domain.BalanceImport, error) {
	return s.imports.GetByID(ctx, tenantID, importID)
}

func (s *balanceService) ListImports(ctx context.Context, tenantID, engagementID uuid.UUID, offset, limit int) ([]domain.BalanceImport, int, error) {
	return s.imports.ListByEngagement(ctx, tenantID, engagementID, offset, limit)
}

func (s *balanceService) ProcessImport(ctx context.Context, imp *domain.BalanceImport, maxRetries int) {
	err := s.processOnce(ctx, imp)
	if err == nil {
		if err := s.imports.MarkDone(ctx, imp.ID); err != nil {
			log.Printf("balanceService.ProcessImport: marking %s done: %v", imp.ID, err)
		}
		return
	}

	var parseErr *balance.ParseError
	transient := !errors.As(err, &parseErr)
	if transient && imp.Attempts < maxRetries {
		log.Printf("balanceService.ProcessImport: import %s attempt %d failed, requeueing: %v",
			imp.ID, imp.Attempts, err)
		if err := s.imports.Requeue(ctx, imp.ID); err != nil {
			log.Printf("balanceService.ProcessImport: requeue %s: %v", imp.ID, err)
		}
		return
	}

	log.Printf("balanceService.ProcessImport: import %s failed permanently: %v", imp.ID, err)
	if err := s.imports.MarkError(ctx, imp.ID, err.Error()); err != nil {
		log.Printf("balanceService.ProcessImport: marking %s error: %v", imp.ID, err)
	}
	// The stored balances reflect the failure with empty periods so clients
	// render a consistent error state instead of stale rows.
	s.persistError(ctx, imp, err.Error())
}

func (s *balanceService) processOnce(ctx context.Context, imp *domain.BalanceImport) error {
	meta, err := s.files.GetByID(ctx, imp.TenantID, imp.FileID)
	if err != nil {
		return fmt.Errorf("loading file meta: %w", err)
	}

	data, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", meta.S3Key, err)
	}

	// Background ingest tolerates renamed tabs via positional fallback.
	result, err := balance.Parse(data, balance.Options{PositionalFallback: true})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	set := &domain.BalanceSet{
		EngagementID: imp.EngagementID,
		TenantID:     imp.TenantID,
		Status:       domain.BalanceStatusDone,
		BalanceN:     result.N,
		BalanceN1:    result.N1,
		SourcePath:   meta.S3Key,
		ParsedAt:     now,
	}
	if err := s.balances.Upsert(ctx, set); err != nil {
		return fmt.Errorf("persisting balances: %w", err)
	}
	return nil
}

func (s *balanceService) persistError(ctx context.Context, imp *domain.BalanceImport, message string) {
	set := &domain.BalanceSet{
		EngagementID: imp.EngagementID,
		TenantID:     imp.TenantID,
		Status:       domain.BalanceStatusError,
		BalanceN:     domain.BalanceRows{},
		BalanceN1:    domain.BalanceRows{},
		ErrorMessage: message,
		ParsedAt:     time.Now().UTC(),
	}
	if err := s.balances.Upsert(ctx, set); err != nil {
		log.Printf("balanceService.persistError: %v", err)
	}
}

func (s *balanceService) ExportCSV(ctx context.Context, tenantID, engagementID uuid.UUID, w io.Writer) (string, error) {
	e, err := s.engagements.GetByID(ctx, tenantID, engagementID)
	if err != nil {
		return "", err
	}
	set, err := s.balances.GetByEngagement(ctx, tenantID, engagementID)
	if err != nil {
		return "", err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return "", fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return "", err
	}
	if err := cw.WriteBalanceSet(set); err != nil {
		return "", err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return csvexport.BuildFilename(e.Name), nil
}
