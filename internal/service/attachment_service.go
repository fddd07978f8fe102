package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lekha/internal/config"
	"lekha/internal/domain"
	"lekha/internal/port"
)

// AttachmentUploadInput is the DTO for attaching a document to a voucher.
type AttachmentUploadInput struct {
	CompanyID  uuid.UUID
	VoucherID  uuid.UUID
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// AttachmentService manages supporting documents stored against vouchers.
type AttachmentService interface {
	Upload(ctx context.Context, input AttachmentUploadInput) (*domain.VoucherAttachment, error)
	ListByVoucher(ctx context.Context, companyID, voucherID uuid.UUID) ([]domain.VoucherAttachment, error)
	GetDownloadURL(ctx context.Context, companyID, attachmentID uuid.UUID) (string, error)
	Delete(ctx context.Context, companyID, attachmentID uuid.UUID) error
}

type attachmentService struct {
	attachmentRepo port.AttachmentRepository
	voucherRepo    port.VoucherRepository
	storage        port.ObjectStorage
	cfg            *config.S3Config
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	attachmentRepo port.AttachmentRepository,
	voucherRepo port.VoucherRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) AttachmentService {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		voucherRepo:    voucherRepo,
		storage:        storage,
		cfg:            cfg,
	}
}

func (s *attachmentService) Upload(ctx context.Context, input AttachmentUploadInput) (*domain.VoucherAttachment, error) {
	// The voucher must exist in this company before anything is stored.
	voucher, err := s.voucherRepo.GetByID(ctx, input.CompanyID, input.VoucherID)
	if err != nil {
		return nil, err
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedAttachmentExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	if _, validContent := domain.AllowedAttachmentContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	attachmentID := uuid.New()
	s3Key := fmt.Sprintf("companies/%s/vouchers/%s/%s", input.CompanyID, voucher.ID, attachmentID)
	contentType := domain.AllowedAttachmentTypes[fileType]

	att := &domain.VoucherAttachment{
		ID:           attachmentID,
		VoucherID:    voucher.ID,
		CompanyID:    input.CompanyID,
		UploadedBy:   input.UploadedBy,
		FileName:     attachmentID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
	}

	log.Printf("attachmentService.Upload: uploading %s (%s, %d bytes) for voucher %s in company %s",
		input.Header.Filename, contentType, input.Header.Size, voucher.ID, input.CompanyID)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("attachmentService.Upload: S3 upload failed for voucher %s: %v", voucher.ID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.attachmentRepo.Create(ctx, att); err != nil {
		// Metadata failed after the object landed; remove the orphan.
		_ = s.storage.Delete(ctx, att.S3Bucket, att.S3Key)
		return nil, fmt.Errorf("creating attachment metadata: %w", err)
	}
	return att, nil
}

func (s *attachmentService) ListByVoucher(ctx context.Context, companyID, voucherID uuid.UUID) ([]domain.VoucherAttachment, error) {
	return s.attachmentRepo.ListByVoucher(ctx, companyID, voucherID)
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, companyID, attachmentID uuid.UUID) (string, error) {
	att, err := s.attachmentRepo.GetByID(ctx, companyID, attachmentID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, att.S3Bucket, att.S3Key, s.cfg.PresignExpiry)
}

func (s *attachmentService) Delete(ctx context.Context, companyID, attachmentID uuid.UUID) error {
	log.Printf("attachmentService.Delete: deleting attachment %s for company %s", attachmentID, companyID)

	att, err := s.attachmentRepo.GetByID(ctx, companyID, attachmentID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, att.S3Bucket, att.S3Key); err != nil {
		log.Printf("attachmentService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.attachmentRepo.Delete(ctx, companyID, attachmentID)
}
