package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// VoucherFilter narrows voucher listings.
type VoucherFilter struct {
	Status *domain.VoucherStatus
	Type   *domain.VoucherType
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}

// VoucherRepository provides access to vouchers and their lines. Mutating
// methods that participate in posting (GetByIDForUpdate, NextSequence,
// MarkPosted, MarkReversed) must run inside a Transactor transaction.
type VoucherRepository interface {
	// Create inserts a voucher header together with its lines.
	Create(ctx context.Context, voucher *domain.Voucher) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Voucher, error)
	GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.Voucher, error)
	List(ctx context.Context, companyID uuid.UUID, filter VoucherFilter) ([]domain.Voucher, int, error)
	// NextSequence atomically increments and returns the per-(company, type)
	// voucher counter. Gap-free: must only be called once the surrounding
	// transaction is certain to post.
	NextSequence(ctx context.Context, companyID uuid.UUID, vtype domain.VoucherType) (int64, error)
	MarkPosted(ctx context.Context, companyID, id uuid.UUID, sequenceNo int64, postedAt time.Time) error
	MarkReversed(ctx context.Context, companyID, id, reversedBy uuid.UUID) error
}
