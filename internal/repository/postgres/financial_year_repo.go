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

type financialYearRepo struct {
	db *sqlx.DB
}

// NewFinancialYearRepo creates a new PostgreSQL-backed FinancialYearRepository.
func NewFinancialYearRepo(db *sqlx.DB) port.FinancialYearRepository {
	return &financialYearRepo{db: db}
}

func (r *financialYearRepo) Create(ctx context.Context, fy *domain.FinancialYear) error {
	fy.ID = uuid.New()
	now := time.Now().UTC()
	fy.CreatedAt = now
	fy.UpdatedAt = now

	query := `INSERT INTO financial_years (id, company_id, label, start_date, end_date, status, is_current, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		fy.ID, fy.CompanyID, fy.Label, fy.StartDate, fy.EndDate,
		fy.Status, fy.IsCurrent, fy.CreatedAt, fy.UpdatedAt)
	if err != nil {
		return fmt.Errorf("financialYearRepo.Create: %w", err)
	}
	return nil
}

func (r *financialYearRepo) getOne(ctx context.Context, query string, args ...interface{}) (*domain.FinancialYear, error) {
	var fy domain.FinancialYear
	err := ext(ctx, r.db).GetContext(ctx, &fy, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &fy, nil
}

func (r *financialYearRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error) {
	fy, err := r.getOne(ctx,
		"SELECT * FROM financial_years WHERE company_id = $1 AND id = $2", companyID, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("financialYearRepo.GetByID: %w", err)
	}
	return fy, err
}

func (r *financialYearRepo) GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error) {
	fy, err := r.getOne(ctx,
		"SELECT * FROM financial_years WHERE company_id = $1 AND id = $2 FOR UPDATE", companyID, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("financialYearRepo.GetByIDForUpdate: %w", err)
	}
	return fy, err
}

func (r *financialYearRepo) List(ctx context.Context, companyID uuid.UUID) ([]domain.FinancialYear, error) {
	var years []domain.FinancialYear
	err := ext(ctx, r.db).SelectContext(ctx, &years,
		"SELECT * FROM financial_years WHERE company_id = $1 ORDER BY start_date", companyID)
	if err != nil {
		return nil, fmt.Errorf("financialYearRepo.List: %w", err)
	}
	return years, nil
}

func (r *financialYearRepo) FindByDate(ctx context.Context, companyID uuid.UUID, date time.Time) (*domain.FinancialYear, error) {
	fy, err := r.getOne(ctx,
		"SELECT * FROM financial_years WHERE company_id = $1 AND start_date <= $2 AND end_date > $2",
		companyID, date)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoFinancialYear
	}
	if err != nil {
		return nil, fmt.Errorf("financialYearRepo.FindByDate: %w", err)
	}
	return fy, nil
}

func (r *financialYearRepo) FindByDateForUpdate(ctx context.Context, companyID uuid.UUID, date time.Time) (*domain.FinancialYear, error) {
	fy, err := r.getOne(ctx,
		"SELECT * FROM financial_years WHERE company_id = $1 AND start_date <= $2 AND end_date > $2 FOR UPDATE",
		companyID, date)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoFinancialYear
	}
	if err != nil {
		return nil, fmt.Errorf("financialYearRepo.FindByDateForUpdate: %w", err)
	}
	return fy, nil
}

func (r *financialYearRepo) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status domain.FinancialYearStatus) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		"UPDATE financial_years SET status = $1, updated_at = $2 WHERE company_id = $3 AND id = $4",
		status, time.Now().UTC(), companyID, id)
	if err != nil {
		return fmt.Errorf("financialYearRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *financialYearRepo) ClearCurrent(ctx context.Context, companyID uuid.UUID) error {
	_, err := ext(ctx, r.db).ExecContext(ctx,
		"UPDATE financial_years SET is_current = FALSE, updated_at = $1 WHERE company_id = $2 AND is_current = TRUE",
		time.Now().UTC(), companyID)
	if err != nil {
		return fmt.Errorf("financialYearRepo.ClearCurrent: %w", err)
	}
	return nil
}

func (r *financialYearRepo) SetCurrent(ctx context.Context, companyID, id uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		"UPDATE financial_years SET is_current = TRUE, updated_at = $1 WHERE company_id = $2 AND id = $3",
		time.Now().UTC(), companyID, id)
	if err != nil {
		return fmt.Errorf("financialYearRepo.SetCurrent: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *financialYearRepo) HasOverlap(ctx context.Context, companyID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	err := ext(ctx, r.db).GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM financial_years WHERE company_id = $1 AND start_date < $2 AND end_date > $3)",
		companyID, end, start)
	if err != nil {
		return false, fmt.Errorf("financialYearRepo.HasOverlap: %w", err)
	}
	return exists, nil
}
