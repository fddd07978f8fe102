package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockReturnRepo is a mock implementation of port.ReturnRepository.
type MockReturnRepo struct {
	mock.Mock
}

func (m *MockReturnRepo) Upsert(ctx context.Context, ret *domain.TaxReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepo) GetByPeriod(ctx context.Context, companyID uuid.UUID, period string, rtype domain.ReturnType) (*domain.TaxReturn, error) {
	args := m.Called(ctx, companyID, period, rtype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxReturn), args.Error(1)
}

func (m *MockReturnRepo) List(ctx context.Context, companyID uuid.UUID, year string, rtype *domain.ReturnType) ([]domain.TaxReturn, error) {
	args := m.Called(ctx, companyID, year, rtype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxReturn), args.Error(1)
}

func (m *MockReturnRepo) AggregateOutward(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*domain.ReturnTotals, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnTotals), args.Error(1)
}
