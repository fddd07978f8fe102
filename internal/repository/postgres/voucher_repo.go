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

type voucherRepo struct {
	db *sqlx.DB
}

// NewVoucherRepo creates a new PostgreSQL-backed VoucherRepository.
func NewVoucherRepo(db *sqlx.DB) port.VoucherRepository {
	return &voucherRepo{db: db}
}

func (r *voucherRepo) Create(ctx context.Context, voucher *domain.Voucher) error {
	if voucher.ID == uuid.Nil {
		voucher.ID = uuid.New()
	}
	now := time.Now().UTC()
	voucher.CreatedAt = now
	voucher.UpdatedAt = now

	query := `INSERT INTO vouchers
		(id, company_id, type, voucher_date, narration, sequence_no, status, posted_at, reversal_of, reversed_by, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	q := ext(ctx, r.db)
	_, err := q.ExecContext(ctx, query,
		voucher.ID, voucher.CompanyID, voucher.Type, voucher.VoucherDate, voucher.Narration,
		voucher.SequenceNo, voucher.Status, voucher.PostedAt, voucher.ReversalOf, voucher.ReversedBy,
		voucher.CreatedBy, voucher.CreatedAt, voucher.UpdatedAt)
	if err != nil {
		return fmt.Errorf("voucherRepo.Create: %w", err)
	}

	lineQuery := `INSERT INTO voucher_lines
		(id, voucher_id, company_id, account_id, debit, credit, tax_rate, tax_head, narration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for i := range voucher.Lines {
		line := &voucher.Lines[i]
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.VoucherID = voucher.ID
		line.CompanyID = voucher.CompanyID
		line.CreatedAt = now

		_, err := q.ExecContext(ctx, lineQuery,
			line.ID, line.VoucherID, line.CompanyID, line.AccountID,
			line.Debit, line.Credit, line.TaxRate, line.TaxHead, line.Narration, line.CreatedAt)
		if err != nil {
			return fmt.Errorf("voucherRepo.Create line %d: %w", i, err)
		}
	}
	return nil
}

func (r *voucherRepo) getByID(ctx context.Context, companyID, id uuid.UUID, forUpdate bool) (*domain.Voucher, error) {
	query := "SELECT * FROM vouchers WHERE company_id = $1 AND id = $2"
	if forUpdate {
		query += " FOR UPDATE"
	}

	q := ext(ctx, r.db)
	var voucher domain.Voucher
	err := q.GetContext(ctx, &voucher, query, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("voucherRepo.GetByID: %w", err)
	}

	err = q.SelectContext(ctx, &voucher.Lines,
		"SELECT * FROM voucher_lines WHERE voucher_id = $1 ORDER BY created_at, id", id)
	if err != nil {
		return nil, fmt.Errorf("voucherRepo.GetByID lines: %w", err)
	}
	return &voucher, nil
}

func (r *voucherRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Voucher, error) {
	return r.getByID(ctx, companyID, id, false)
}

func (r *voucherRepo) GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.Voucher, error) {
	return r.getByID(ctx, companyID, id, true)
}

// buildVoucherWhere constructs a dynamic WHERE clause for voucher listings.
func buildVoucherWhere(companyID uuid.UUID, filter port.VoucherFilter) (clause string, args []interface{}) {
	args = []interface{}{companyID}
	clause = "WHERE company_id = $1"
	argN := 2

	if filter.Status != nil {
		clause += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, *filter.Status)
		argN++
	}
	if filter.Type != nil {
		clause += fmt.Sprintf(" AND type = $%d", argN)
		args = append(args, *filter.Type)
		argN++
	}
	if filter.From != nil {
		clause += fmt.Sprintf(" AND voucher_date >= $%d", argN)
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		clause += fmt.Sprintf(" AND voucher_date <= $%d", argN)
		args = append(args, *filter.To)
		argN++
	}
	return clause, args
}

func (r *voucherRepo) List(ctx context.Context, companyID uuid.UUID, filter port.VoucherFilter) ([]domain.Voucher, int, error) {
	whereClause, args := buildVoucherWhere(companyID, filter)
	q := ext(ctx, r.db)

	var total int
	countQuery := "SELECT COUNT(*) FROM vouchers " + whereClause
	if err := q.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("voucherRepo.List count: %w", err)
	}

	dataQuery := fmt.Sprintf(
		"SELECT * FROM vouchers %s ORDER BY voucher_date DESC, created_at DESC OFFSET %d LIMIT %d",
		whereClause, filter.Offset, filter.Limit)

	var vouchers []domain.Voucher
	if err := q.SelectContext(ctx, &vouchers, dataQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("voucherRepo.List: %w", err)
	}
	return vouchers, total, nil
}

// NextSequence bumps the per-(company, type) counter under the transaction's
// row lock. The conditional insert seeds the counter on first use.
func (r *voucherRepo) NextSequence(ctx context.Context, companyID uuid.UUID, vtype domain.VoucherType) (int64, error) {
	query := `INSERT INTO voucher_sequences (company_id, voucher_type, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, voucher_type)
		DO UPDATE SET last_value = voucher_sequences.last_value + 1
		RETURNING last_value`

	var seq int64
	if err := ext(ctx, r.db).GetContext(ctx, &seq, query, companyID, vtype); err != nil {
		return 0, fmt.Errorf("voucherRepo.NextSequence: %w", err)
	}
	return seq, nil
}

func (r *voucherRepo) MarkPosted(ctx context.Context, companyID, id uuid.UUID, sequenceNo int64, postedAt time.Time) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE vouchers SET sequence_no = $1, status = $2, posted_at = $3, updated_at = $3
		 WHERE company_id = $4 AND id = $5 AND status = $6`,
		sequenceNo, domain.VoucherStatusPosted, postedAt, companyID, id, domain.VoucherStatusDraft)
	if err != nil {
		return fmt.Errorf("voucherRepo.MarkPosted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *voucherRepo) MarkReversed(ctx context.Context, companyID, id, reversedBy uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE vouchers SET status = $1, reversed_by = $2, updated_at = $3
		 WHERE company_id = $4 AND id = $5 AND status = $6`,
		domain.VoucherStatusReversed, reversedBy, time.Now().UTC(), companyID, id, domain.VoucherStatusPosted)
	if err != nil {
		return fmt.Errorf("voucherRepo.MarkReversed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
