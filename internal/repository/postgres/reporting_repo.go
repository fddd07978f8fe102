package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type reportingRepo struct {
	db *sqlx.DB
}

// NewReportingRepo creates a new PostgreSQL-backed ReportingRepository.
func NewReportingRepo(db *sqlx.DB) port.ReportingRepository {
	return &reportingRepo{db: db}
}

// postedStatuses restricts aggregation to vouchers that have been through
// posting. Reversed originals stay in so they net out against their reversal.
const postedStatuses = "('posted', 'reversed')"

func (r *reportingRepo) ActivityByAccount(ctx context.Context, companyID uuid.UUID, from, to *time.Time) ([]domain.TrialBalanceRow, error) {
	args := []interface{}{companyID}
	clause := "WHERE v.company_id = $1 AND v.status IN " + postedStatuses
	argN := 2

	if from != nil {
		clause += fmt.Sprintf(" AND v.voucher_date >= $%d", argN)
		args = append(args, *from)
		argN++
	}
	if to != nil {
		clause += fmt.Sprintf(" AND v.voucher_date < $%d", argN)
		args = append(args, *to)
		argN++ //nolint:ineffassign // argN kept incremented for consistency
	}

	query := fmt.Sprintf(`SELECT
		l.account_id, a.code AS account_code, a.name AS account_name, a.nature,
		COALESCE(SUM(l.debit), 0) AS debit, COALESCE(SUM(l.credit), 0) AS credit
	FROM voucher_lines l
	JOIN vouchers v ON v.id = l.voucher_id
	JOIN accounts a ON a.id = l.account_id
	%s
	GROUP BY l.account_id, a.code, a.name, a.nature
	ORDER BY a.code`, clause)

	var rows []domain.TrialBalanceRow
	if err := ext(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("reportingRepo.ActivityByAccount: %w", err)
	}
	return rows, nil
}

func (r *reportingRepo) AccountActivity(ctx context.Context, companyID, accountID uuid.UUID, to time.Time) (*domain.TrialBalanceRow, error) {
	query := `SELECT
		l.account_id, a.code AS account_code, a.name AS account_name, a.nature,
		COALESCE(SUM(l.debit), 0) AS debit, COALESCE(SUM(l.credit), 0) AS credit
	FROM voucher_lines l
	JOIN vouchers v ON v.id = l.voucher_id
	JOIN accounts a ON a.id = l.account_id
	WHERE v.company_id = $1 AND l.account_id = $2 AND v.status IN ` + postedStatuses + `
		AND v.voucher_date < $3
	GROUP BY l.account_id, a.code, a.name, a.nature`

	var row domain.TrialBalanceRow
	err := ext(ctx, r.db).GetContext(ctx, &row, query, companyID, accountID, to)
	if err != nil {
		// No posted activity yet: zero balance, not an error.
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.TrialBalanceRow{
				AccountID: accountID,
				Debit:     decimal.Zero,
				Credit:    decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("reportingRepo.AccountActivity: %w", err)
	}
	return &row, nil
}
