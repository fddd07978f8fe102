package port

import (
	"context"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// AttachmentRepository provides access to voucher attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.VoucherAttachment) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.VoucherAttachment, error)
	ListByVoucher(ctx context.Context, companyID, voucherID uuid.UUID) ([]domain.VoucherAttachment, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
