package domain

import "github.com/shopspring/decimal"

// AssetType is the market a holding is priced from.
type AssetType string

const (
	Stock  AssetType = "STOCK"
	Crypto AssetType = "CRYPTO"
	Metal  AssetType = "METAL"
)

// IsValid reports whether t is a known asset type.
func (t AssetType) IsValid() bool {
	return t == Stock || t == Crypto || t == Metal
}

// Holding is a position in an asset. ConvertedValue caches Quantity*LastPrice in the
// owner's base currency and is refreshed by the price job.
type Holding struct {
	HoldingID       string          `json:"holdingID"`
	UserID          string          `json:"userID"`
	Platform        string          `json:"platform"`
	Ticker          string          `json:"ticker"`
	Name            string          `json:"name"`
	AssetType       AssetType       `json:"assetType"`
	Quantity        decimal.Decimal `json:"quantity"`
	AvgCost         decimal.Decimal `json:"avgCost"`
	HoldingCurrency string          `json:"holdingCurrency"`
	LastPrice       decimal.Decimal `json:"lastPrice"`
	ConvertedValue  decimal.Decimal `json:"convertedValue"`
	AuditFields
}

// HoldingWithOwner pairs a holding with its owner's base currency for bulk revaluation.
type HoldingWithOwner struct {
	Holding
	BaseCurrency string
}

// PriceRefreshSummary reports the outcome of one price refresh run.
type PriceRefreshSummary struct {
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Skipped []string `json:"skipped,omitempty"` // symbols that could not be priced
}
