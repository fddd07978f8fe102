package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	company.ID = uuid.New()
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `INSERT INTO companies (id, name, slug, gstin, state_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		company.ID, company.Name, company.Slug, company.GSTIN, company.StateCode,
		company.IsActive, company.CreatedAt, company.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "slug") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := ext(ctx, r.db).GetContext(ctx, &company, "SELECT * FROM companies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	var company domain.Company
	err := ext(ctx, r.db).GetContext(ctx, &company, "SELECT * FROM companies WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetBySlug: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) List(ctx context.Context, offset, limit int) ([]domain.Company, int, error) {
	var total int
	err := ext(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM companies")
	if err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List count: %w", err)
	}

	var companies []domain.Company
	err = ext(ctx, r.db).SelectContext(ctx, &companies,
		"SELECT * FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List: %w", err)
	}
	return companies, total, nil
}
