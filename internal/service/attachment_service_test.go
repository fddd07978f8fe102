package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/config"
	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/service"
	"lekha/mocks"
)

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Region:        "ap-south-1",
		Bucket:        "lekha-test-attachments",
		MaxFileSizeMB: 5,
		PresignExpiry: 900,
	}
}

// pdfContent returns bytes that pass magic-byte detection as application/pdf.
func pdfContent() []byte {
	return append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 600)...)
}

// pngContent returns bytes that pass magic-byte detection as image/png.
func pngContent() []byte {
	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, bytes.Repeat([]byte{0x00}, 600)...)
}

func createMultipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	header := form.File["file"][0]
	file, err := header.Open()
	require.NoError(t, err)
	return file, header
}

func newAttachmentService(
	attachmentRepo *mocks.MockAttachmentRepo,
	voucherRepo *mocks.MockVoucherRepo,
	storage *mocks.MockObjectStorage,
) service.AttachmentService {
	return service.NewAttachmentService(attachmentRepo, voucherRepo, storage, testS3Config())
}

func TestAttachmentService_Upload(t *testing.T) {
	attachmentRepo := new(mocks.MockAttachmentRepo)
	voucherRepo := new(mocks.MockVoucherRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAttachmentService(attachmentRepo, voucherRepo, storage)

	companyID := uuid.New()
	voucherID := uuid.New()
	file, header := createMultipartFile(t, "invoice.pdf", pdfContent())
	defer file.Close()

	voucherRepo.On("GetByID", mock.Anything, companyID, voucherID).
		Return(&domain.Voucher{ID: voucherID, CompanyID: companyID}, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	attachmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.VoucherAttachment")).Return(nil)

	att, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
		CompanyID:  companyID,
		VoucherID:  voucherID,
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AttachmentTypePDF, att.FileType)
	assert.Equal(t, "invoice.pdf", att.OriginalName)
	assert.Equal(t, "lekha-test-attachments", att.S3Bucket)
	assert.Contains(t, att.S3Key, companyID.String())
	assert.Contains(t, att.S3Key, voucherID.String())
	attachmentRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestAttachmentService_Upload_UnknownVoucher(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAttachmentService(new(mocks.MockAttachmentRepo), voucherRepo, storage)

	companyID := uuid.New()
	voucherID := uuid.New()
	file, header := createMultipartFile(t, "invoice.pdf", pdfContent())
	defer file.Close()

	voucherRepo.On("GetByID", mock.Anything, companyID, voucherID).Return(nil, domain.ErrNotFound)

	_, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
		CompanyID: companyID,
		VoucherID: voucherID,
		File:      file,
		Header:    header,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestAttachmentService_Upload_DisallowedExtension(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	svc := newAttachmentService(new(mocks.MockAttachmentRepo), voucherRepo, new(mocks.MockObjectStorage))

	companyID := uuid.New()
	voucherID := uuid.New()
	file, header := createMultipartFile(t, "macro.xlsm", pdfContent())
	defer file.Close()

	voucherRepo.On("GetByID", mock.Anything, companyID, voucherID).
		Return(&domain.Voucher{ID: voucherID, CompanyID: companyID}, nil)

	_, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
		CompanyID: companyID,
		VoucherID: voucherID,
		File:      file,
		Header:    header,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestAttachmentService_Upload_ContentMismatch(t *testing.T) {
	voucherRepo := new(mocks.MockVoucherRepo)
	svc := newAttachmentService(new(mocks.MockAttachmentRepo), voucherRepo, new(mocks.MockObjectStorage))

	companyID := uuid.New()
	voucherID := uuid.New()
	// .pdf name, but plain text body
	file, header := createMultipartFile(t, "invoice.pdf", bytes.Repeat([]byte("hello "), 100))
	defer file.Close()

	voucherRepo.On("GetByID", mock.Anything, companyID, voucherID).
		Return(&domain.Voucher{ID: voucherID, CompanyID: companyID}, nil)

	_, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
		CompanyID: companyID,
		VoucherID: voucherID,
		File:      file,
		Header:    header,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestAttachmentService_Upload_CleansUpOrphanOnMetadataFailure(t *testing.T) {
	attachmentRepo := new(mocks.MockAttachmentRepo)
	voucherRepo := new(mocks.MockVoucherRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAttachmentService(attachmentRepo, voucherRepo, storage)

	companyID := uuid.New()
	voucherID := uuid.New()
	file, header := createMultipartFile(t, "proof.png", pngContent())
	defer file.Close()

	voucherRepo.On("GetByID", mock.Anything, companyID, voucherID).
		Return(&domain.Voucher{ID: voucherID, CompanyID: companyID}, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{}, nil)
	attachmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.VoucherAttachment")).
		Return(assert.AnError)
	storage.On("Delete", mock.Anything, "lekha-test-attachments", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
		CompanyID: companyID,
		VoucherID: voucherID,
		File:      file,
		Header:    header,
	})
	require.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, "lekha-test-attachments", mock.AnythingOfType("string"))
}

func TestAttachmentService_GetDownloadURL(t *testing.T) {
	attachmentRepo := new(mocks.MockAttachmentRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAttachmentService(attachmentRepo, new(mocks.MockVoucherRepo), storage)

	companyID := uuid.New()
	attachmentID := uuid.New()
	attachmentRepo.On("GetByID", mock.Anything, companyID, attachmentID).
		Return(&domain.VoucherAttachment{ID: attachmentID, S3Bucket: "b", S3Key: "k"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "b", "k", int64(900)).
		Return("https://s3.example/presigned", nil)

	url, err := svc.GetDownloadURL(context.Background(), companyID, attachmentID)

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/presigned", url)
}

func TestAttachmentService_Delete(t *testing.T) {
	attachmentRepo := new(mocks.MockAttachmentRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newAttachmentService(attachmentRepo, new(mocks.MockVoucherRepo), storage)

	companyID := uuid.New()
	attachmentID := uuid.New()
	attachmentRepo.On("GetByID", mock.Anything, companyID, attachmentID).
		Return(&domain.VoucherAttachment{ID: attachmentID, S3Bucket: "b", S3Key: "k"}, nil)
	storage.On("Delete", mock.Anything, "b", "k").Return(nil)
	attachmentRepo.On("Delete", mock.Anything, companyID, attachmentID).Return(nil)

	err := svc.Delete(context.Background(), companyID, attachmentID)

	require.NoError(t, err)
	attachmentRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}
