package service_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/config"
	"auditdesk/internal/domain"
	"auditdesk/internal/port"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type fileFixture struct {
	files   *mocks.MockFileMetaRepo
	imports *mocks.MockBalanceImportRepo
	storage *mocks.MockObjectStorage
	svc     service.FileService
}

func newFileFixture() *fileFixture {
	f := &fileFixture{
		files:   new(mocks.MockFileMetaRepo),
		imports: new(mocks.MockBalanceImportRepo),
		storage: new(mocks.MockObjectStorage),
	}
	f.svc = service.NewFileService(f.files, f.imports, f.storage, &config.S3Config{
		Bucket:        "auditdesk-files",
		MaxFileSizeMB: 10,
	})
	return f
}

// uploadFile wraps a bytes.Reader to satisfy multipart.File.
type uploadFile struct {
	*bytes.Reader
}

func (uploadFile) Close() error { return nil }

// zipPayload returns bytes that content-detect as a zip container, which is
// what Office workbooks look like on the wire.
func zipPayload() []byte {
	return append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0}, 600)...)
}

func TestFileService_Upload_EngagementWorkbook(t *testing.T) {
	f := newFileFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	uploaderID := uuid.New()
	data := zipPayload()

	input := service.FileUploadInput{
		TenantID:     tenantID,
		EngagementID: &engagementID,
		UploadedBy:   uploaderID,
		File:         uploadFile{bytes.NewReader(data)},
		Header:       &multipart.FileHeader{Filename: "tb.xlsm", Size: int64(len(data))},
	}

	f.files.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return strings.Contains(in.Key, fmt.Sprintf("engagements/%s/", engagementID)) &&
			in.Metadata["engagement-id"] == engagementID.String()
	})).Return(&port.UploadOutput{}, nil)
	f.files.On("UpdateStatus", mock.Anything, tenantID, mock.Anything, domain.FileStatusUploaded).Return(nil)
	f.imports.On("Create", mock.Anything, mock.MatchedBy(func(imp *domain.BalanceImport) bool {
		return imp.EngagementID == engagementID && imp.CreatedBy == uploaderID
	})).Return(nil)

	meta, err := f.svc.Upload(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, domain.FileStatusUploaded, meta.Status)
	assert.Contains(t, meta.S3Key, "engagements/")
	f.storage.AssertExpectations(t)
	f.imports.AssertExpectations(t)
}

func TestFileService_Upload_LooseFileKeepsFlatKey(t *testing.T) {
	f := newFileFixture()
	tenantID := uuid.New()
	data := zipPayload()

	input := service.FileUploadInput{
		TenantID:   tenantID,
		UploadedBy: uuid.New(),
		File:       uploadFile{bytes.NewReader(data)},
		Header:     &multipart.FileHeader{Filename: "tb.xlsm", Size: int64(len(data))},
	}

	f.files.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return !strings.Contains(in.Key, "engagements/") && in.Metadata["engagement-id"] == ""
	})).Return(&port.UploadOutput{}, nil)
	f.files.On("UpdateStatus", mock.Anything, tenantID, mock.Anything, domain.FileStatusUploaded).Return(nil)

	_, err := f.svc.Upload(context.Background(), input)

	require.NoError(t, err)
	// No engagement, so no import is queued even for a workbook.
	f.imports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
