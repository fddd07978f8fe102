package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/csvexport"
	"lekha/internal/domain"
)

func TestWriteTrialBalance(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	tb := &domain.TrialBalance{
		FinancialYearID: uuid.New(),
		Rows: []domain.TrialBalanceRow{
			{AccountCode: "1100", AccountName: "Cash", Nature: domain.NatureAsset, Debit: decimal.NewFromInt(400), Credit: decimal.Zero},
			{AccountCode: "4000", AccountName: "Sales", Nature: domain.NatureIncome, Debit: decimal.Zero, Credit: decimal.NewFromInt(400)},
		},
		TotalDebit:  decimal.NewFromInt(400),
		TotalCredit: decimal.NewFromInt(400),
	}

	require.NoError(t, w.WriteTrialBalance(tb))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Account Code", "Account Name", "Nature", "Debit", "Credit"}, records[0])
	assert.Equal(t, []string{"1100", "Cash", "asset", "400.00", "0.00"}, records[1])
	assert.Equal(t, []string{"4000", "Sales", "income", "0.00", "400.00"}, records[2])
	assert.Equal(t, []string{"", "Total", "", "400.00", "400.00"}, records[3])
}

func TestWriteReturns(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	generatedAt := time.Date(2025, 7, 11, 10, 30, 0, 0, time.UTC)
	returns := []domain.TaxReturn{
		{
			Period:       "2025-06",
			ReturnType:   domain.ReturnTypeGSTR1,
			TaxableValue: decimal.NewFromInt(1000),
			CGST:         decimal.NewFromInt(90),
			SGST:         decimal.NewFromInt(90),
			IGST:         decimal.Zero,
			TotalTax:     decimal.NewFromInt(180),
			VoucherCount: 4,
			GeneratedAt:  generatedAt,
		},
	}

	require.NoError(t, w.WriteReturns(returns))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"2025-06", "gstr1", "1000.00", "90.00", "90.00", "0.00", "180.00", "4", "2025-07-11T10:30:00Z"}, records[1])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "trial_balance_FY_2025-26", csvexport.SanitizeFilename("trial balance FY 2025-26"))
	assert.Equal(t, "gstr1_2025-06", csvexport.SanitizeFilename("gstr1 / 2025-06"))
	assert.Equal(t, "report", csvexport.SanitizeFilename("__report__"))

	long := strings.Repeat("a", 150)
	assert.Len(t, csvexport.SanitizeFilename(long), 100)
}

func TestBuildFilename(t *testing.T) {
	name := csvexport.BuildFilename("trial balance")
	assert.True(t, strings.HasPrefix(name, "trial_balance_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
