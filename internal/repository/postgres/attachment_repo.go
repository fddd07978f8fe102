package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type attachmentRepo struct {
	db *sqlx.DB
}

// NewAttachmentRepo creates a new PostgreSQL-backed AttachmentRepository.
func NewAttachmentRepo(db *sqlx.DB) port.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, att *domain.VoucherAttachment) error {
	if att.ID == uuid.Nil {
		att.ID = uuid.New()
	}
	att.CreatedAt = time.Now().UTC()

	query := `INSERT INTO voucher_attachments
		(id, voucher_id, company_id, uploaded_by, file_name, original_name, file_type, file_size, s3_bucket, s3_key, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		att.ID, att.VoucherID, att.CompanyID, att.UploadedBy, att.FileName, att.OriginalName,
		att.FileType, att.FileSize, att.S3Bucket, att.S3Key, att.ContentType, att.CreatedAt)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Create: %w", err)
	}
	return nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.VoucherAttachment, error) {
	var att domain.VoucherAttachment
	err := ext(ctx, r.db).GetContext(ctx, &att,
		"SELECT * FROM voucher_attachments WHERE company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("attachmentRepo.GetByID: %w", err)
	}
	return &att, nil
}

func (r *attachmentRepo) ListByVoucher(ctx context.Context, companyID, voucherID uuid.UUID) ([]domain.VoucherAttachment, error) {
	var atts []domain.VoucherAttachment
	err := ext(ctx, r.db).SelectContext(ctx, &atts,
		"SELECT * FROM voucher_attachments WHERE company_id = $1 AND voucher_id = $2 ORDER BY created_at",
		companyID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListByVoucher: %w", err)
	}
	return atts, nil
}

func (r *attachmentRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		"DELETE FROM voucher_attachments WHERE company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
