package port

import (
	"context"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// AccountRepository provides access to the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	// GetByID resolves an account without company scoping so callers can
	// distinguish a cross-company reference from a missing account.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByCode(ctx context.Context, companyID uuid.UUID, code string) (*domain.Account, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Account, error)
}
