package period

import (
	"testing"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(start time.Time, gapDays, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range n {
		out[i] = start.AddDate(0, 0, i*gapDays)
	}
	return out
}

func TestAverageGapDetector(t *testing.T) {
	start := date(2025, time.January, 1)
	det := AverageGapDetector{}

	tests := []struct {
		name   string
		dates  []time.Time
		want   domain.Periodicity
		wantOK bool
	}{
		{"two dates never match", series(start, 30, 2), "", false},
		{"weekly", series(start, 7, 4), domain.Weekly, true},
		{"monthly", series(start, 30, 3), domain.Monthly, true},
		{"quarterly", series(start, 91, 3), domain.Quarterly, true},
		{"half yearly", series(start, 182, 3), domain.HalfYearly, true},
		{"yearly", series(start, 365, 3), domain.Yearly, true},
		{"too sparse", series(start, 400, 3), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := det.Detect(tt.dates)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	got, err := MonthlyEquivalent(decimal.NewFromInt(2400), domain.Yearly)
	require.NoError(t, err)
	assert.Equal(t, "200", got.String())

	got, err = MonthlyEquivalent(decimal.NewFromInt(300), domain.Quarterly)
	require.NoError(t, err)
	assert.Equal(t, "100", got.String())

	got, err = MonthlyEquivalent(decimal.NewFromInt(120), domain.Weekly)
	require.NoError(t, err)
	assert.Equal(t, "520", got.String())

	_, err = MonthlyEquivalent(decimal.NewFromInt(10), domain.OneTime)
	assert.Error(t, err)
}

func TestMonthlyFactor(t *testing.T) {
	f, err := MonthlyFactor(domain.Monthly)
	require.NoError(t, err)
	assert.True(t, f.Equal(decimal.NewFromInt(1)))

	f, err = MonthlyFactor(domain.Weekly)
	require.NoError(t, err)
	assert.Equal(t, "4.33", f.Round(2).String())
}
