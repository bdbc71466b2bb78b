package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/SscSPs/pfm_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CurrencyRateResponse defines the data returned for a current rate.
type CurrencyRateResponse struct {
	Base      string          `json:"base"`
	Target    string          `json:"target"`
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToListCurrencyRateResponse converts a slice of current rates.
func ToListCurrencyRateResponse(rates []domain.CurrencyRate) []CurrencyRateResponse {
	res := make([]CurrencyRateResponse, len(rates))
	for i, r := range rates {
		res[i] = CurrencyRateResponse{Base: r.Base, Target: r.Target, Rate: r.Rate, UpdatedAt: r.UpdatedAt}
	}
	return res
}

// ListRatesParams defines query parameters for listing rates.
type ListRatesParams struct {
	Base string `form:"base,default=USD" binding:"currency"`
}

// RefreshRatesRequest triggers a manual refresh for a base currency.
type RefreshRatesRequest struct {
	Base string `json:"base" binding:"omitempty,currency"`
}

// ConvertParams defines query parameters for a one-off conversion. When Date is set the
// historical rate of that day is used.
type ConvertParams struct {
	Amount string     `form:"amount" binding:"required"`
	From   string     `form:"from" binding:"required,currency"`
	To     string     `form:"to" binding:"required,currency"`
	Date   *time.Time `form:"date" time_format:"2006-01-02"`
}

// ConvertResponse is the result of a conversion, rounded for display.
type ConvertResponse struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Converted float64 `json:"converted"`
	Date      *string `json:"date,omitempty"`
}

// ToConvertResponse rounds and converts a conversion result for output.
func ToConvertResponse(amount decimal.Decimal, from, to string, converted decimal.Decimal, date *time.Time) ConvertResponse {
	res := ConvertResponse{
		Amount:    money.ToFloatLossy(amount),
		From:      from,
		To:        to,
		Converted: money.ToFloatLossy(money.Round2(converted)),
	}
	if date != nil {
		d := date.Format("2006-01-02")
		res.Date = &d
	}
	return res
}
