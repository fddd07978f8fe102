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

type returnRepo struct {
	db *sqlx.DB
}

// NewReturnRepo creates a new PostgreSQL-backed ReturnRepository.
func NewReturnRepo(db *sqlx.DB) port.ReturnRepository {
	return &returnRepo{db: db}
}

func (r *returnRepo) Upsert(ctx context.Context, ret *domain.TaxReturn) error {
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}

	query := `INSERT INTO tax_returns
		(id, company_id, period, return_type, taxable_value, cgst, sgst, igst, total_tax, voucher_count, status, generated_by, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id, period, return_type)
		DO UPDATE SET taxable_value = EXCLUDED.taxable_value,
			cgst = EXCLUDED.cgst, sgst = EXCLUDED.sgst, igst = EXCLUDED.igst,
			total_tax = EXCLUDED.total_tax, voucher_count = EXCLUDED.voucher_count,
			status = EXCLUDED.status, generated_by = EXCLUDED.generated_by,
			generated_at = EXCLUDED.generated_at`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		ret.ID, ret.CompanyID, ret.Period, ret.ReturnType,
		ret.TaxableValue, ret.CGST, ret.SGST, ret.IGST, ret.TotalTax,
		ret.VoucherCount, ret.Status, ret.GeneratedBy, ret.GeneratedAt)
	if err != nil {
		return fmt.Errorf("returnRepo.Upsert: %w", err)
	}
	return nil
}

func (r *returnRepo) GetByPeriod(ctx context.Context, companyID uuid.UUID, period string, rtype domain.ReturnType) (*domain.TaxReturn, error) {
	var ret domain.TaxReturn
	err := ext(ctx, r.db).GetContext(ctx, &ret,
		"SELECT * FROM tax_returns WHERE company_id = $1 AND period = $2 AND return_type = $3",
		companyID, period, rtype)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("returnRepo.GetByPeriod: %w", err)
	}
	return &ret, nil
}

func (r *returnRepo) List(ctx context.Context, companyID uuid.UUID, year string, rtype *domain.ReturnType) ([]domain.TaxReturn, error) {
	args := []interface{}{companyID}
	clause := "WHERE company_id = $1"
	argN := 2

	if year != "" {
		clause += fmt.Sprintf(" AND period LIKE $%d", argN)
		args = append(args, year+"-%")
		argN++
	}
	if rtype != nil {
		clause += fmt.Sprintf(" AND return_type = $%d", argN)
		args = append(args, *rtype)
		argN++ //nolint:ineffassign // argN kept incremented for consistency
	}

	var returns []domain.TaxReturn
	query := "SELECT * FROM tax_returns " + clause + " ORDER BY period DESC, return_type"
	if err := ext(ctx, r.db).SelectContext(ctx, &returns, query, args...); err != nil {
		return nil, fmt.Errorf("returnRepo.List: %w", err)
	}
	return returns, nil
}

// AggregateOutward computes the outward-supply totals for one period.
// Taxable value is the net credit on income accounts of untaxed lines; each
// tax head sums its own lines. Sales vouchers and reversals of sales
// vouchers are in scope, so reversed invoices net to zero.
func (r *returnRepo) AggregateOutward(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*domain.ReturnTotals, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN l.tax_head = 'none' AND a.nature = 'income' THEN l.credit - l.debit ELSE 0 END), 0) AS taxable_value,
		COALESCE(SUM(CASE WHEN l.tax_head = 'cgst' THEN l.credit - l.debit ELSE 0 END), 0) AS cgst,
		COALESCE(SUM(CASE WHEN l.tax_head = 'sgst' THEN l.credit - l.debit ELSE 0 END), 0) AS sgst,
		COALESCE(SUM(CASE WHEN l.tax_head = 'igst' THEN l.credit - l.debit ELSE 0 END), 0) AS igst,
		COUNT(DISTINCT v.id) AS voucher_count
	FROM vouchers v
	JOIN voucher_lines l ON l.voucher_id = v.id
	JOIN accounts a ON a.id = l.account_id
	WHERE v.company_id = $1
		AND v.status IN ` + postedStatuses + `
		AND v.voucher_date >= $2 AND v.voucher_date < $3
		AND (v.type = $4 OR (v.type = $5 AND EXISTS (
			SELECT 1 FROM vouchers o WHERE o.id = v.reversal_of AND o.type = $4)))`

	var totals domain.ReturnTotals
	err := ext(ctx, r.db).GetContext(ctx, &totals, query,
		companyID, from, to, domain.VoucherTypeSales, domain.VoucherTypeReversal)
	if err != nil {
		return nil, fmt.Errorf("returnRepo.AggregateOutward: %w", err)
	}
	return &totals, nil
}
