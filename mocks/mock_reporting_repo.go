package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockReportingRepo is a mock implementation of port.ReportingRepository.
type MockReportingRepo struct {
	mock.Mock
}

func (m *MockReportingRepo) ActivityByAccount(ctx context.Context, companyID uuid.UUID, from, to *time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepo) AccountActivity(ctx context.Context, companyID, accountID uuid.UUID, to time.Time) (*domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, accountID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceRow), args.Error(1)
}
