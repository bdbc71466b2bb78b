package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Goal is a savings target in its own currency.
type Goal struct {
	GoalID       string          `json:"goalID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Currency     string          `json:"currency"`
	TargetDate   time.Time       `json:"targetDate"`
	Completed    bool            `json:"completed"`
	AuditFields
}

// Progress is saved/target as a percentage clamped to [0, 100]; 0 when the target is 0.
func (g Goal) Progress() decimal.Decimal {
	if g.TargetAmount.Sign() <= 0 {
		return decimal.Zero
	}
	p := g.SavedAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return hundred
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// Remaining is the amount still to be saved, never negative.
func (g Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.SavedAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
