package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// ReturnRepository persists generated statutory returns and runs the
// underlying tax aggregation.
type ReturnRepository interface {
	// Upsert overwrites the return row keyed by (company, period, type).
	Upsert(ctx context.Context, ret *domain.TaxReturn) error
	GetByPeriod(ctx context.Context, companyID uuid.UUID, period string, rtype domain.ReturnType) (*domain.TaxReturn, error)
	List(ctx context.Context, companyID uuid.UUID, year string, rtype *domain.ReturnType) ([]domain.TaxReturn, error)
	// AggregateOutward sums taxable value and tax heads over posted outward
	// vouchers (sales, plus reversals of sales) with from <= date < to.
	AggregateOutward(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*domain.ReturnTotals, error)
}
