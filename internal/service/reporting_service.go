package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// ReportingService derives ledger balances and statements from posted
// vouchers. Everything here is a pure read over the aggregation repository;
// nothing is cached or memoized.
type ReportingService interface {
	// Balance returns an account's nature-signed balance over all posted
	// activity up to and including asOf.
	Balance(ctx context.Context, companyID, accountID uuid.UUID, asOf time.Time) (decimal.Decimal, error)
	TrialBalance(ctx context.Context, companyID, financialYearID uuid.UUID) (*domain.TrialBalance, error)
	ProfitAndLoss(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*domain.ProfitAndLoss, error)
	BalanceSheet(ctx context.Context, companyID uuid.UUID, asOf time.Time) (*domain.BalanceSheet, error)
}

type reportingService struct {
	reportingRepo port.ReportingRepository
	accountRepo   port.AccountRepository
	fyRepo        port.FinancialYearRepository
}

// NewReportingService creates a new ReportingService implementation.
func NewReportingService(
	reportingRepo port.ReportingRepository,
	accountRepo port.AccountRepository,
	fyRepo port.FinancialYearRepository,
) ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		fyRepo:        fyRepo,
	}
}

// signedAmount nets a row's debit and credit on the account's normal side.
func signedAmount(row *domain.TrialBalanceRow, nature domain.AccountNature) decimal.Decimal {
	if nature.DebitNormal() {
		return row.Debit.Sub(row.Credit)
	}
	return row.Credit.Sub(row.Debit)
}

func (s *reportingService) Balance(ctx context.Context, companyID, accountID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.CompanyID != companyID {
		return decimal.Zero, domain.ErrCrossTenantViolation
	}

	// asOf is an inclusive date; the repository bound is exclusive.
	to := asOf.AddDate(0, 0, 1)
	row, err := s.reportingRepo.AccountActivity(ctx, companyID, accountID, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregating account activity: %w", err)
	}
	return signedAmount(row, account.Nature), nil
}

// TrialBalance lists every account touched within a financial year with its
// net debit or credit balance. The two column totals are recomputed and
// compared on every call; inequality means the posting invariant has been
// violated and the report is refused.
func (s *reportingService) TrialBalance(ctx context.Context, companyID, financialYearID uuid.UUID) (*domain.TrialBalance, error) {
	fy, err := s.fyRepo.GetByID(ctx, companyID, financialYearID)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.ActivityByAccount(ctx, companyID, &fy.StartDate, &fy.EndDate)
	if err != nil {
		return nil, fmt.Errorf("aggregating activity: %w", err)
	}

	tb := &domain.TrialBalance{
		FinancialYearID: fy.ID,
		Rows:            make([]domain.TrialBalanceRow, 0, len(rows)),
		TotalDebit:      decimal.Zero,
		TotalCredit:     decimal.Zero,
	}
	for i := range rows {
		row := rows[i]
		net := row.Debit.Sub(row.Credit)
		if net.IsNegative() {
			row.Debit, row.Credit = decimal.Zero, net.Neg()
		} else {
			row.Debit, row.Credit = net, decimal.Zero
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}

	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		log.Printf("INTEGRITY reportingService.TrialBalance: company %s year %s: total debit %s != total credit %s",
			companyID, fy.ID, tb.TotalDebit, tb.TotalCredit)
		return nil, domain.ErrIntegrityViolation
	}
	return tb, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*domain.ProfitAndLoss, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidPeriod
	}

	toExcl := to.AddDate(0, 0, 1)
	rows, err := s.reportingRepo.ActivityByAccount(ctx, companyID, &from, &toExcl)
	if err != nil {
		return nil, fmt.Errorf("aggregating activity: %w", err)
	}

	pl := &domain.ProfitAndLoss{
		From:         from,
		To:           to,
		Income:       []domain.StatementLine{},
		Expenses:     []domain.StatementLine{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for i := range rows {
		row := &rows[i]
		line := domain.StatementLine{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Amount:      signedAmount(row, row.Nature),
		}
		switch row.Nature {
		case domain.NatureIncome:
			pl.Income = append(pl.Income, line)
			pl.TotalIncome = pl.TotalIncome.Add(line.Amount)
		case domain.NatureExpense:
			pl.Expenses = append(pl.Expenses, line)
			pl.TotalExpense = pl.TotalExpense.Add(line.Amount)
		}
	}
	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpense)
	return pl, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, companyID uuid.UUID, asOf time.Time) (*domain.BalanceSheet, error) {
	toExcl := asOf.AddDate(0, 0, 1)
	rows, err := s.reportingRepo.ActivityByAccount(ctx, companyID, nil, &toExcl)
	if err != nil {
		return nil, fmt.Errorf("aggregating activity: %w", err)
	}

	bs := &domain.BalanceSheet{
		AsOf:             asOf,
		Assets:           []domain.StatementLine{},
		Liabilities:      []domain.StatementLine{},
		Equity:           []domain.StatementLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for i := range rows {
		row := &rows[i]
		line := domain.StatementLine{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Amount:      signedAmount(row, row.Nature),
		}
		switch row.Nature {
		case domain.NatureAsset:
			bs.Assets = append(bs.Assets, line)
			bs.TotalAssets = bs.TotalAssets.Add(line.Amount)
		case domain.NatureLiability:
			bs.Liabilities = append(bs.Liabilities, line)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(line.Amount)
		case domain.NatureEquity:
			bs.Equity = append(bs.Equity, line)
			bs.TotalEquity = bs.TotalEquity.Add(line.Amount)
		}
	}
	return bs, nil
}
