package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockFinancialYearRepo is a mock implementation of port.FinancialYearRepository.
type MockFinancialYearRepo struct {
	mock.Mock
}

func (m *MockFinancialYearRepo) Create(ctx context.Context, fy *domain.FinancialYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

func (m *MockFinancialYearRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepo) GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepo) List(ctx context.Context, companyID uuid.UUID) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepo) FindByDate(ctx context.Context, companyID uuid.UUID, date time.Time) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepo) FindByDateForUpdate(ctx context.Context, companyID uuid.UUID, date time.Time) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepo) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status domain.FinancialYearStatus) error {
	args := m.Called(ctx, companyID, id, status)
	return args.Error(0)
}

func (m *MockFinancialYearRepo) ClearCurrent(ctx context.Context, companyID uuid.UUID) error {
	args := m.Called(ctx, companyID)
	return args.Error(0)
}

func (m *MockFinancialYearRepo) SetCurrent(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockFinancialYearRepo) HasOverlap(ctx context.Context, companyID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, companyID, start, end)
	return args.Bool(0), args.Error(1)
}
