package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lekha/internal/domain"
)

// FinancialYearRepository provides access to financial year records. The
// ForUpdate variants take a row lock and must run inside a Transactor
// transaction; they serialize guard checks against concurrent transitions.
type FinancialYearRepository interface {
	Create(ctx context.Context, fy *domain.FinancialYear) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error)
	GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error)
	List(ctx context.Context, companyID uuid.UUID) ([]domain.FinancialYear, error)
	// FindByDate resolves the year whose [start, end) range contains date.
	FindByDate(ctx context.Context, companyID uuid.UUID, date time.Time) (*domain.FinancialYear, error)
	FindByDateForUpdate(ctx context.Context, companyID uuid.UUID, date time.Time) (*domain.FinancialYear, error)
	UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status domain.FinancialYearStatus) error
	// ClearCurrent unsets is_current on the company's current year, if any.
	ClearCurrent(ctx context.Context, companyID uuid.UUID) error
	SetCurrent(ctx context.Context, companyID, id uuid.UUID) error
	// HasOverlap reports whether any year of the company intersects [start, end).
	HasOverlap(ctx context.Context, companyID uuid.UUID, start, end time.Time) (bool, error)
}
