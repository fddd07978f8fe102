package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// MockVoucherRepo is a mock implementation of port.VoucherRepository.
type MockVoucherRepo struct {
	mock.Mock
}

func (m *MockVoucherRepo) Create(ctx context.Context, voucher *domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Voucher, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepo) GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.Voucher, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepo) List(ctx context.Context, companyID uuid.UUID, filter port.VoucherFilter) ([]domain.Voucher, int, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Voucher), args.Int(1), args.Error(2)
}

func (m *MockVoucherRepo) NextSequence(ctx context.Context, companyID uuid.UUID, vtype domain.VoucherType) (int64, error) {
	args := m.Called(ctx, companyID, vtype)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherRepo) MarkPosted(ctx context.Context, companyID, id uuid.UUID, sequenceNo int64, postedAt time.Time) error {
	args := m.Called(ctx, companyID, id, sequenceNo, postedAt)
	return args.Error(0)
}

func (m *MockVoucherRepo) MarkReversed(ctx context.Context, companyID, id, reversedBy uuid.UUID) error {
	args := m.Called(ctx, companyID, id, reversedBy)
	return args.Error(0)
}
