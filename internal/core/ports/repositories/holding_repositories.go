package repositories

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HoldingReader defines read operations for holdings.
type HoldingReader interface {
	FindHoldingByID(ctx context.Context, userID, holdingID string) (*domain.Holding, error)
	ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error)
	// ListAllHoldings returns every user's holdings with the owner's base currency.
	ListAllHoldings(ctx context.Context) ([]domain.HoldingWithOwner, error)
}

// HoldingWriter defines write operations for holdings.
type HoldingWriter interface {
	SaveHolding(ctx context.Context, holding domain.Holding) error
	UpdateHolding(ctx context.Context, holding domain.Holding) error
	DeleteHolding(ctx context.Context, userID, holdingID string) error
	UpdateHoldingValuation(ctx context.Context, holdingID string, lastPrice, convertedValue decimal.Decimal) error
}

// HoldingRepositoryFacade combines all holding repository interfaces.
type HoldingRepositoryFacade interface {
	HoldingReader
	HoldingWriter
}
