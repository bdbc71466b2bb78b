package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidCurrencyCode reports whether code is three upper-case letters.
func IsValidCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

// CurrencyRate is the latest known rate for a base/target pair.
type CurrencyRate struct {
	Base      string          `json:"base"`
	Target    string          `json:"target"`
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CurrencyRateHistory is the rate of a pair as of one UTC calendar day.
type CurrencyRateHistory struct {
	Base     string          `json:"base"`
	Target   string          `json:"target"`
	Rate     decimal.Decimal `json:"rate"`
	RateDate time.Time       `json:"rateDate"` // always UTC midnight
}

// CurrencyPair identifies a conversion direction.
type CurrencyPair struct {
	From string
	To   string
}

// RateTable is a full set of rates for one base currency as returned by a provider.
type RateTable struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// MoneyAmount is an amount in a currency, optionally tied to the day it applies to.
type MoneyAmount struct {
	Amount   decimal.Decimal
	Currency string
	Date     time.Time // required only for historical conversion
}
