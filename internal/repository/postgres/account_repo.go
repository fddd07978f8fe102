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

type accountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo creates a new PostgreSQL-backed AccountRepository.
func NewAccountRepo(db *sqlx.DB) port.AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	query := `INSERT INTO accounts (id, company_id, code, name, nature, parent_id, path, is_system, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		account.ID, account.CompanyID, account.Code, account.Name, account.Nature,
		account.ParentID, account.Path, account.IsSystem, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "code") {
			return domain.ErrDuplicateAccountCode
		}
		return fmt.Errorf("accountRepo.Create: %w", err)
	}
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := ext(ctx, r.db).GetContext(ctx, &account, "SELECT * FROM accounts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("accountRepo.GetByID: %w", err)
	}
	return &account, nil
}

func (r *accountRepo) GetByCode(ctx context.Context, companyID uuid.UUID, code string) (*domain.Account, error) {
	var account domain.Account
	err := ext(ctx, r.db).GetContext(ctx, &account,
		"SELECT * FROM accounts WHERE company_id = $1 AND code = $2", companyID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("accountRepo.GetByCode: %w", err)
	}
	return &account, nil
}

func (r *accountRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Account, error) {
	var accounts []domain.Account
	err := ext(ctx, r.db).SelectContext(ctx, &accounts,
		"SELECT * FROM accounts WHERE company_id = $1 ORDER BY path", companyID)
	if err != nil {
		return nil, fmt.Errorf("accountRepo.ListByCompany: %w", err)
	}
	return accounts, nil
}
