package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/internal/service"
	"lekha/mocks"
)

func TestReportingService_Balance_DebitNormal(t *testing.T) {
	reportingRepo := new(mocks.MockReportingRepo)
	accountRepo := new(mocks.MockAccountRepo)
	svc := service.NewReportingService(reportingRepo, accountRepo, new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	accountID := uuid.New()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	accountRepo.On("GetByID", mock.Anything, accountID).
		Return(&domain.Account{ID: accountID, CompanyID: companyID, Nature: domain.NatureAsset}, nil)
	reportingRepo.On("AccountActivity", mock.Anything, companyID, accountID, asOf.AddDate(0, 0, 1)).
		Return(&domain.TrialBalanceRow{Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(120)}, nil)

	balance, err := svc.Balance(context.Background(), companyID, accountID, asOf)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(380)), "got %s", balance)
}

func TestReportingService_Balance_CreditNormal(t *testing.T) {
	reportingRepo := new(mocks.MockReportingRepo)
	accountRepo := new(mocks.MockAccountRepo)
	svc := service.NewReportingService(reportingRepo, accountRepo, new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	accountID := uuid.New()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	accountRepo.On("GetByID", mock.Anything, accountID).
		Return(&domain.Account{ID: accountID, CompanyID: companyID, Nature: domain.NatureIncome}, nil)
	reportingRepo.On("AccountActivity", mock.Anything, companyID, accountID, mock.AnythingOfType("time.Time")).
		Return(&domain.TrialBalanceRow{Debit: decimal.NewFromInt(20), Credit: decimal.NewFromInt(300)}, nil)

	balance, err := svc.Balance(context.Background(), companyID, accountID, asOf)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(280)), "got %s", balance)
}

func TestReportingService_Balance_CrossCompanyAccount(t *testing.T) {
	accountRepo := new(mocks.MockAccountRepo)
	svc := service.NewReportingService(new(mocks.MockReportingRepo), accountRepo, new(mocks.MockFinancialYearRepo))

	accountID := uuid.New()
	accountRepo.On("GetByID", mock.Anything, accountID).
		Return(&domain.Account{ID: accountID, CompanyID: uuid.New()}, nil)

	_, err := svc.Balance(context.Background(), uuid.New(), accountID, time.Now())
	assert.ErrorIs(t, err, domain.ErrCrossTenantViolation)
}

func TestReportingService_TrialBalance_NetsEachAccount(t *testing.T) {
	reportingRepo := new(mocks.MockReportingRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := service.NewReportingService(reportingRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)

	fyRepo.On("GetByID", mock.Anything, companyID, fy.ID).Return(fy, nil)
	reportingRepo.On("ActivityByAccount", mock.Anything, companyID, &fy.StartDate, &fy.EndDate).
		Return([]domain.TrialBalanceRow{
			{AccountCode: "1000", Nature: domain.NatureAsset, Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(100)},
			{AccountCode: "4000", Nature: domain.NatureIncome, Debit: decimal.NewFromInt(0), Credit: decimal.NewFromInt(400)},
		}, nil)

	tb, err := svc.TrialBalance(context.Background(), companyID, fy.ID)

	require.NoError(t, err)
	require.Len(t, tb.Rows, 2)
	assert.True(t, tb.Rows[0].Debit.Equal(decimal.NewFromInt(400)))
	assert.True(t, tb.Rows[0].Credit.IsZero())
	assert.True(t, tb.Rows[1].Debit.IsZero())
	assert.True(t, tb.Rows[1].Credit.Equal(decimal.NewFromInt(400)))
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
}

func TestReportingService_TrialBalance_RefusesInconsistentLedger(t *testing.T) {
	reportingRepo := new(mocks.MockReportingRepo)
	fyRepo := new(mocks.MockFinancialYearRepo)
	svc := service.NewReportingService(reportingRepo, new(mocks.MockAccountRepo), fyRepo)

	companyID := uuid.New()
	fy := openYear(companyID)

	fyRepo.On("GetByID", mock.Anything, companyID, fy.ID).Return(fy, nil)
	reportingRepo.On("ActivityByAccount", mock.Anything, companyID, &fy.StartDate, &fy.EndDate).
		Return([]domain.TrialBalanceRow{
			{AccountCode: "1000", Nature: domain.NatureAsset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{AccountCode: "4000", Nature: domain.NatureIncome, Debit: decimal.Zero, Credit: decimal.NewFromInt(400)},
		}, nil)

	_, err := svc.TrialBalance(context.Background(), companyID, fy.ID)
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}

func TestReportingService_ProfitAndLoss(t *testing.T) {
	reportingRepo := new(mocks.MockReportingRepo)
	svc := service.NewReportingService(reportingRepo, new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	reportingRepo.On("ActivityByAccount", mock.Anything, companyID, &from, mock.AnythingOfType("*time.Time")).
		Return([]domain.TrialBalanceRow{
			{AccountCode: "4000", Nature: domain.NatureIncome, Debit: decimal.Zero, Credit: decimal.NewFromInt(1000)},
			{AccountCode: "5000", Nature: domain.NatureExpense, Debit: decimal.NewFromInt(600), Credit: decimal.Zero},
			{AccountCode: "1000", Nature: domain.NatureAsset, Debit: decimal.NewFromInt(400), Credit: decimal.Zero},
		}, nil)

	pl, err := svc.ProfitAndLoss(context.Background(), companyID, from, to)

	require.NoError(t, err)
	assert.Len(t, pl.Income, 1)
	assert.Len(t, pl.Expenses, 1)
	assert.True(t, pl.TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, pl.TotalExpense.Equal(decimal.NewFromInt(600)))
	assert.True(t, pl.NetProfit.Equal(decimal.NewFromInt(400)))
}

func TestReportingService_ProfitAndLoss_InvertedRange(t *testing.T) {
	svc := service.NewReportingService(new(mocks.MockReportingRepo), new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	from := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.ProfitAndLoss(context.Background(), uuid.New(), from, to)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestReportingService_BalanceSheet(t *testing.T) {
	reportingRepo := new(mocks.MockReportingRepo)
	svc := service.NewReportingService(reportingRepo, new(mocks.MockAccountRepo), new(mocks.MockFinancialYearRepo))

	companyID := uuid.New()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	reportingRepo.On("ActivityByAccount", mock.Anything, companyID, (*time.Time)(nil), mock.AnythingOfType("*time.Time")).
		Return([]domain.TrialBalanceRow{
			{AccountCode: "1000", Nature: domain.NatureAsset, Debit: decimal.NewFromInt(900), Credit: decimal.NewFromInt(100)},
			{AccountCode: "2000", Nature: domain.NatureLiability, Debit: decimal.Zero, Credit: decimal.NewFromInt(300)},
			{AccountCode: "3000", Nature: domain.NatureEquity, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
			{AccountCode: "4000", Nature: domain.NatureIncome, Debit: decimal.Zero, Credit: decimal.NewFromInt(200)},
		}, nil)

	bs, err := svc.BalanceSheet(context.Background(), companyID, asOf)

	require.NoError(t, err)
	assert.Len(t, bs.Assets, 1)
	assert.Len(t, bs.Liabilities, 1)
	assert.Len(t, bs.Equity, 1)
	assert.True(t, bs.TotalAssets.Equal(decimal.NewFromInt(800)))
	assert.True(t, bs.TotalLiabilities.Equal(decimal.NewFromInt(300)))
	assert.True(t, bs.TotalEquity.Equal(decimal.NewFromInt(500)))
}
