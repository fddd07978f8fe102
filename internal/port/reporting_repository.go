package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// ReportingRepository aggregates posted voucher lines. All queries see only
// POSTED and REVERSED vouchers' lines (reversal lines included, draft lines
// never), and read a consistent snapshot.
type ReportingRepository interface {
	// ActivityByAccount returns per-account debit/credit totals over posted
	// lines with from <= voucher_date < to. Nil bounds are open-ended.
	ActivityByAccount(ctx context.Context, companyID uuid.UUID, from, to *time.Time) ([]domain.TrialBalanceRow, error)
	// AccountActivity returns one account's debit/credit totals over posted
	// lines with voucher_date < to.
	AccountActivity(ctx context.Context, companyID, accountID uuid.UUID, to time.Time) (*domain.TrialBalanceRow, error)
}
