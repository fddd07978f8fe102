package port

import (
	"context"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// CompanyRepository provides access to company (tenant) records.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
}

// UserRepository provides access to user records within a company.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, companyID uuid.UUID, email string) (*domain.User, error)
}
