package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateHoldingRequest defines the data needed to record a holding.
type CreateHoldingRequest struct {
	Platform        string           `json:"platform" binding:"required"`
	Ticker          string           `json:"ticker" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	AssetType       domain.AssetType `json:"assetType" binding:"required,oneof=STOCK CRYPTO METAL"`
	Quantity        decimal.Decimal  `json:"quantity"`
	AvgCost         decimal.Decimal  `json:"avgCost"`
	HoldingCurrency string           `json:"holdingCurrency" binding:"required,currency"`
}

// UpdateHoldingRequest defines the fields that may change on a holding.
type UpdateHoldingRequest struct {
	Platform        *string          `json:"platform"`
	Name            *string          `json:"name"`
	Quantity        *decimal.Decimal `json:"quantity"`
	AvgCost         *decimal.Decimal `json:"avgCost"`
	HoldingCurrency *string          `json:"holdingCurrency" binding:"omitempty,currency"`
}

// HoldingResponse defines the data returned for a holding.
type HoldingResponse struct {
	HoldingID       string           `json:"holdingID"`
	Platform        string           `json:"platform"`
	Ticker          string           `json:"ticker"`
	Name            string           `json:"name"`
	AssetType       domain.AssetType `json:"assetType"`
	Quantity        decimal.Decimal  `json:"quantity"`
	AvgCost         decimal.Decimal  `json:"avgCost"`
	HoldingCurrency string           `json:"holdingCurrency"`
	LastPrice       decimal.Decimal  `json:"lastPrice"`
	ConvertedValue  decimal.Decimal  `json:"convertedValue"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ToHoldingResponse converts a domain.Holding to its response DTO.
func ToHoldingResponse(h *domain.Holding) HoldingResponse {
	return HoldingResponse{
		HoldingID:       h.HoldingID,
		Platform:        h.Platform,
		Ticker:          h.Ticker,
		Name:            h.Name,
		AssetType:       h.AssetType,
		Quantity:        h.Quantity,
		AvgCost:         h.AvgCost,
		HoldingCurrency: h.HoldingCurrency,
		LastPrice:       h.LastPrice,
		ConvertedValue:  h.ConvertedValue,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

// ToListHoldingResponse converts a slice of holdings.
func ToListHoldingResponse(holdings []domain.Holding) []HoldingResponse {
	res := make([]HoldingResponse, len(holdings))
	for i := range holdings {
		res[i] = ToHoldingResponse(&holdings[i])
	}
	return res
}
