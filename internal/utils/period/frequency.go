package period

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FrequencyDetector classifies a date series into a recurrence.
type FrequencyDetector interface {
	Detect(dates []time.Time) (domain.Periodicity, bool)
}

// MinOccurrences is the smallest series a detector will classify.
const MinOccurrences = 3

// AverageGapDetector averages adjacent gaps and compares the mean against fixed
// thresholds. It has no variance check, so irregular spending with a coincidental
// mean spacing is reported as recurring.
type AverageGapDetector struct{}

var gapThresholds = []struct {
	maxDays float64
	period  domain.Periodicity
}{
	{7, domain.Weekly},
	{31, domain.Monthly},
	{93, domain.Quarterly},
	{186, domain.HalfYearly},
	{366, domain.Yearly},
}

// Detect expects dates sorted ascending.
func (AverageGapDetector) Detect(dates []time.Time) (domain.Periodicity, bool) {
	if len(dates) < MinOccurrences {
		return "", false
	}
	var total float64
	for i := 1; i < len(dates); i++ {
		total += dates[i].Sub(dates[i-1]).Hours() / 24
	}
	avg := total / float64(len(dates)-1)
	for _, th := range gapThresholds {
		if avg <= th.maxDays {
			return th.period, true
		}
	}
	return "", false
}

var occurrencesPerYear = map[domain.Periodicity]int64{
	domain.Daily:      365,
	domain.Weekly:     52,
	domain.Monthly:    12,
	domain.Quarterly:  4,
	domain.HalfYearly: 2,
	domain.Yearly:     1,
}

var twelve = decimal.NewFromInt(12)

// MonthlyFactor is how many times per month p recurs, e.g. 1/12 for YEARLY.
func MonthlyFactor(p domain.Periodicity) (decimal.Decimal, error) {
	n, ok := occurrencesPerYear[p]
	if !ok {
		return decimal.Zero, apperrors.NewFieldValidationError("PlannedEvent", "recurrence", "no monthly factor for "+string(p))
	}
	return decimal.NewFromInt(n).Div(twelve), nil
}

// MonthlyEquivalent normalizes a per-occurrence cost to a monthly cost. It multiplies
// before dividing so exact fractions such as 2400/12 stay exact.
func MonthlyEquivalent(cost decimal.Decimal, p domain.Periodicity) (decimal.Decimal, error) {
	n, ok := occurrencesPerYear[p]
	if !ok {
		return decimal.Zero, apperrors.NewFieldValidationError("PlannedEvent", "recurrence", "no monthly factor for "+string(p))
	}
	return cost.Mul(decimal.NewFromInt(n)).Div(twelve), nil
}
