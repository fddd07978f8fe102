package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
)

func TestParsePeriod(t *testing.T) {
	got, err := domain.ParsePeriod("2025-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, period := range []string{"", "2025", "2025-13", "2025-00", "202506", "2025-6", "2025/06", "jun-2025"} {
		_, err := domain.ParsePeriod(period)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "period %q", period)
	}
}

func TestFinancialYearContains(t *testing.T) {
	fy := &domain.FinancialYear{
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, fy.Contains(fy.StartDate), "start date is inclusive")
	assert.True(t, fy.Contains(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, fy.Contains(fy.EndDate), "end date is exclusive")
	assert.False(t, fy.Contains(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
}
