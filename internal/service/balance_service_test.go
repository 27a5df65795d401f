package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"auditdesk/internal/balance"
	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type balanceFixture struct {
	balances    *mocks.MockBalanceRepo
	imports     *mocks.MockBalanceImportRepo
	engagements *mocks.MockEngagementRepo
	files       *mocks.MockFileMetaRepo
	storage     *mocks.MockObjectStorage
	svc         service.BalanceService
}

func newBalanceFixture() *balanceFixture {
	f := &balanceFixture{
		balances:    new(mocks.MockBalanceRepo),
		imports:     new(mocks.MockBalanceImportRepo),
		engagements: new(mocks.MockEngagementRepo),
		files:       new(mocks.MockFileMetaRepo),
		storage:     new(mocks.MockObjectStorage),
	}
	f.svc = service.NewBalanceService(f.balances, f.imports, f.engagements, f.files, f.storage)
	return f
}

func balanceWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", balance.SheetNameN))
	_, err := f.NewSheet(balance.SheetNameN1)
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue(balance.SheetNameN, "A6", "101"))
	require.NoError(t, f.SetCellValue(balance.SheetNameN, "B6", "Cash"))
	require.NoError(t, f.SetCellValue(balance.SheetNameN, "C6", 1500))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func testImport(attempts int) *domain.BalanceImport {
	return &domain.BalanceImport{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		EngagementID: uuid.New(),
		FileID:       uuid.New(),
		Status:       domain.ImportStatusProcessing,
		Attempts:     attempts,
	}
}

func TestBalanceService_ProcessImport_Success(t *testing.T) {
	f := newBalanceFixture()
	imp := testImport(1)
	meta := &domain.FileMeta{
		ID:       imp.FileID,
		TenantID: imp.TenantID,
		S3Bucket: "audit-files",
		S3Key:    "tenants/x/files/y/tb.xlsm",
	}

	f.files.On("GetByID", mock.Anything, imp.TenantID, imp.FileID).Return(meta, nil)
	f.storage.On("Download", mock.Anything, "audit-files", meta.S3Key).Return(balanceWorkbook(t), nil)
	f.balances.On("Upsert", mock.Anything, mock.MatchedBy(func(set *domain.BalanceSet) bool {
		return set.Status == domain.BalanceStatusDone &&
			len(set.BalanceN) == 1 &&
			set.BalanceN[0].Account == "101" &&
			set.SourcePath == meta.S3Key
	})).Return(nil)
	f.imports.On("MarkDone", mock.Anything, imp.ID).Return(nil)

	f.svc.ProcessImport(context.Background(), imp, 3)

	f.imports.AssertExpectations(t)
	f.balances.AssertExpectations(t)
}

func TestBalanceService_ProcessImport_ParseFailureIsPermanent(t *testing.T) {
	f := newBalanceFixture()
	imp := testImport(0)
	meta := &domain.FileMeta{ID: imp.FileID, TenantID: imp.TenantID, S3Bucket: "audit-files", S3Key: "k"}

	f.files.On("GetByID", mock.Anything, imp.TenantID, imp.FileID).Return(meta, nil)
	f.storage.On("Download", mock.Anything, "audit-files", "k").Return([]byte("not a workbook"), nil)
	f.imports.On("MarkError", mock.Anything, imp.ID, mock.Anything).Return(nil)
	f.balances.On("Upsert", mock.Anything, mock.MatchedBy(func(set *domain.BalanceSet) bool {
		return set.Status == domain.BalanceStatusError &&
			len(set.BalanceN) == 0 &&
			set.ErrorMessage != ""
	})).Return(nil)

	f.svc.ProcessImport(context.Background(), imp, 3)

	f.imports.AssertNotCalled(t, "Requeue", mock.Anything, mock.Anything)
	f.imports.AssertExpectations(t)
	f.balances.AssertExpectations(t)
}

func TestBalanceService_ProcessImport_TransientFailureRequeues(t *testing.T) {
	f := newBalanceFixture()
	imp := testImport(1)
	meta := &domain.FileMeta{ID: imp.FileID, TenantID: imp.TenantID, S3Bucket: "audit-files", S3Key: "k"}

	f.files.On("GetByID", mock.Anything, imp.TenantID, imp.FileID).Return(meta, nil)
	f.storage.On("Download", mock.Anything, "audit-files", "k").Return(nil, errors.New("connection reset"))
	f.imports.On("Requeue", mock.Anything, imp.ID).Return(nil)

	f.svc.ProcessImport(context.Background(), imp, 3)

	f.imports.AssertExpectations(t)
	f.imports.AssertNotCalled(t, "MarkError", mock.Anything, mock.Anything, mock.Anything)
	f.balances.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestBalanceService_ProcessImport_TransientFailureExhaustsRetries(t *testing.T) {
	f := newBalanceFixture()
	imp := testImport(3)
	meta := &domain.FileMeta{ID: imp.FileID, TenantID: imp.TenantID, S3Bucket: "audit-files", S3Key: "k"}

	f.files.On("GetByID", mock.Anything, imp.TenantID, imp.FileID).Return(meta, nil)
	f.storage.On("Download", mock.Anything, "audit-files", "k").Return(nil, errors.New("connection reset"))
	f.imports.On("MarkError", mock.Anything, imp.ID, mock.Anything).Return(nil)
	f.balances.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	f.svc.ProcessImport(context.Background(), imp, 3)

	f.imports.AssertNotCalled(t, "Requeue", mock.Anything, mock.Anything)
	f.imports.AssertExpectations(t)
}

func TestBalanceService_Enqueue_RejectsNonWorkbook(t *testing.T) {
	f := newBalanceFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	fileID := uuid.New()
	userID := uuid.New()

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(&domain.Engagement{ID: engagementID}, nil)
	f.files.On("GetByID", mock.Anything, tenantID, fileID).Return(&domain.FileMeta{ID: fileID, FileType: domain.FileTypePDF}, nil)

	_, err := f.svc.Enqueue(context.Background(), tenantID, engagementID, fileID, userID)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.imports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBalanceService_Enqueue_CreatesQueuedImport(t *testing.T) {
	f := newBalanceFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	fileID := uuid.New()
	userID := uuid.New()

	f.engagements.On("GetByID", mock.Anything, tenantID, engagementID).Return(&domain.Engagement{ID: engagementID}, nil)
	f.files.On("GetByID", mock.Anything, tenantID, fileID).Return(&domain.FileMeta{ID: fileID, FileType: domain.FileTypeXLSM}, nil)
	f.imports.On("Create", mock.Anything, mock.MatchedBy(func(imp *domain.BalanceImport) bool {
		return imp.EngagementID == engagementID && imp.FileID == fileID && imp.CreatedBy == userID
	})).Return(nil)

	imp, err := f.svc.Enqueue(context.Background(), tenantID, engagementID, fileID, userID)

	assert.NoError(t, err)
	assert.Equal(t, fileID, imp.FileID)
	f.imports.AssertExpectations(t)
}
