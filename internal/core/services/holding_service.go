package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsprov "github.com/SscSPs/pfm_backend/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/SscSPs/pfm_backend/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	holdingResource = "Holding"
	// priceQuoteCurrency is the currency every price provider quotes in.
	priceQuoteCurrency = "USD"
	stockFetchParallel = 4
)

type holdingService struct {
	BaseService
	holdingRepo portsrepo.HoldingRepositoryFacade
	userRepo    portsrepo.UserReader
	prices      portsprov.PriceProvider
	conversion  portssvc.ConversionSvc
}

// HoldingServiceOption is a functional option for configuring the holding service
type HoldingServiceOption func(*holdingService)

// WithHoldingClock overrides the service clock.
func WithHoldingClock(now func() time.Time) HoldingServiceOption {
	return func(s *holdingService) {
		s.Now = now
	}
}

// NewHoldingService creates the holding service.
func NewHoldingService(holdingRepo portsrepo.HoldingRepositoryFacade, userRepo portsrepo.UserReader, prices portsprov.PriceProvider, conversion portssvc.ConversionSvc, options ...HoldingServiceOption) portssvc.HoldingSvcFacade {
	s := &holdingService{
		BaseService: newBaseService(),
		holdingRepo: holdingRepo,
		userRepo:    userRepo,
		prices:      prices,
		conversion:  conversion,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.HoldingSvcFacade = (*holdingService)(nil)

// priceKey normalizes a ticker for matching provider results.
func priceKey(t domain.AssetType, ticker string) string {
	if t == domain.Stock {
		return string(t) + ":" + strings.ToUpper(ticker)
	}
	return string(t) + ":" + strings.ToLower(ticker)
}

// fetchPrice returns the USD price of one holding.
func (s *holdingService) fetchPrice(ctx context.Context, assetType domain.AssetType, ticker string) (decimal.Decimal, error) {
	var (
		prices map[string]decimal.Decimal
		err    error
	)
	switch assetType {
	case domain.Stock:
		return s.prices.StockPrice(ctx, strings.ToUpper(ticker))
	case domain.Crypto:
		prices, err = s.prices.CryptoPrices(ctx, []string{strings.ToLower(ticker)})
	case domain.Metal:
		prices, err = s.prices.MetalPrices(ctx)
	default:
		return decimal.Zero, apperrors.NewFieldValidationError(holdingResource, "assetType", fmt.Sprintf("unknown asset type %q", assetType))
	}
	if err != nil {
		return decimal.Zero, err
	}
	price, ok := prices[strings.ToLower(ticker)]
	if !ok {
		return decimal.Zero, apperrors.NewUpstreamError(string(assetType), fmt.Sprintf("no price for %s", ticker), nil)
	}
	return price, nil
}

// valuation converts quantity*price from the quote currency into base.
func (s *holdingService) valuation(ctx context.Context, quantity, price decimal.Decimal, base string) (decimal.Decimal, error) {
	return s.conversion.ConvertCurrent(ctx, money.Mul(quantity, price), priceQuoteCurrency, base)
}

func validateHoldingAmounts(quantity, avgCost decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return apperrors.NewFieldValidationError(holdingResource, "quantity", "Quantity must be positive")
	}
	if avgCost.Sign() <= 0 {
		return apperrors.NewFieldValidationError(holdingResource, "avgCost", "Average cost must be positive")
	}
	return nil
}

// CreateHolding stores a holding priced at the current market price. A failed price
// lookup leaves the price at zero for the next refresh to fill in.
func (s *holdingService) CreateHolding(ctx context.Context, userID string, req dto.CreateHoldingRequest) (*domain.Holding, error) {
	platform, ticker, name := strings.TrimSpace(req.Platform), strings.TrimSpace(req.Ticker), strings.TrimSpace(req.Name)
	switch {
	case platform == "":
		return nil, apperrors.NewFieldValidationError(holdingResource, "platform", "Platform is required")
	case ticker == "":
		return nil, apperrors.NewFieldValidationError(holdingResource, "ticker", "Ticker is required")
	case name == "":
		return nil, apperrors.NewFieldValidationError(holdingResource, "name", "Name is required")
	case !req.AssetType.IsValid():
		return nil, apperrors.NewFieldValidationError(holdingResource, "assetType", "Asset type must be STOCK, CRYPTO or METAL")
	case !domain.IsValidCurrencyCode(req.HoldingCurrency):
		return nil, apperrors.NewFieldValidationError(holdingResource, "holdingCurrency", "Holding currency must be a 3-letter code")
	}
	if err := validateHoldingAmounts(req.Quantity, req.AvgCost); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	holding := domain.Holding{
		HoldingID:       uuid.NewString(),
		UserID:          userID,
		Platform:        platform,
		Ticker:          ticker,
		Name:            name,
		AssetType:       req.AssetType,
		Quantity:        req.Quantity,
		AvgCost:         req.AvgCost,
		HoldingCurrency: req.HoldingCurrency,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	price, err := s.fetchPrice(ctx, req.AssetType, ticker)
	if err != nil {
		s.LogWarn(ctx, "Price lookup failed, holding stored without price",
			slog.String("ticker", ticker), slog.String("asset_type", string(req.AssetType)), slog.String("error", err.Error()))
	} else {
		holding.LastPrice = price
		if value, err := s.valuation(ctx, holding.Quantity, price, user.BaseCurrency); err != nil {
			s.LogWarn(ctx, "Holding valuation failed", slog.String("ticker", ticker), slog.String("error", err.Error()))
		} else {
			holding.ConvertedValue = value
		}
	}

	if err := s.holdingRepo.SaveHolding(ctx, holding); err != nil {
		s.LogError(ctx, err, "Failed to save holding", slog.String("user_id", userID))
		return nil, err
	}
	return &holding, nil
}

// GetHolding returns a holding owned by the user.
func (s *holdingService) GetHolding(ctx context.Context, userID, holdingID string) (*domain.Holding, error) {
	return s.holdingRepo.FindHoldingByID(ctx, userID, holdingID)
}

// ListHoldings returns every holding of the user.
func (s *holdingService) ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error) {
	return s.holdingRepo.ListHoldings(ctx, userID)
}

// UpdateHolding applies the non-nil fields of req and revalues the cached value when
// the quantity changes.
func (s *holdingService) UpdateHolding(ctx context.Context, userID, holdingID string, req dto.UpdateHoldingRequest) (*domain.Holding, error) {
	holding, err := s.holdingRepo.FindHoldingByID(ctx, userID, holdingID)
	if err != nil {
		return nil, err
	}
	if req.Platform != nil {
		if strings.TrimSpace(*req.Platform) == "" {
			return nil, apperrors.NewFieldValidationError(holdingResource, "platform", "Platform is required")
		}
		holding.Platform = strings.TrimSpace(*req.Platform)
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewFieldValidationError(holdingResource, "name", "Name is required")
		}
		holding.Name = strings.TrimSpace(*req.Name)
	}
	if req.HoldingCurrency != nil {
		holding.HoldingCurrency = *req.HoldingCurrency
	}
	if req.AvgCost != nil {
		holding.AvgCost = *req.AvgCost
	}
	quantityChanged := req.Quantity != nil && !req.Quantity.Equal(holding.Quantity)
	if req.Quantity != nil {
		holding.Quantity = *req.Quantity
	}
	if err := validateHoldingAmounts(holding.Quantity, holding.AvgCost); err != nil {
		return nil, err
	}

	if quantityChanged && !holding.LastPrice.IsZero() {
		user, err := s.userRepo.FindUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		value, err := s.valuation(ctx, holding.Quantity, holding.LastPrice, user.BaseCurrency)
		if err != nil {
			s.LogWarn(ctx, "Holding revaluation failed, cache cleared", slog.String("holding_id", holdingID), slog.String("error", err.Error()))
			value = decimal.Zero
		}
		holding.ConvertedValue = value
	}
	holding.UpdatedAt = s.now()

	if err := s.holdingRepo.UpdateHolding(ctx, *holding); err != nil {
		s.LogError(ctx, err, "Failed to update holding", slog.String("holding_id", holdingID))
		return nil, err
	}
	return holding, nil
}

// DeleteHolding removes a holding owned by the user.
func (s *holdingService) DeleteHolding(ctx context.Context, userID, holdingID string) error {
	return s.holdingRepo.DeleteHolding(ctx, userID, holdingID)
}

// fetchAllPrices prices every distinct ticker. Crypto and metals take one call each,
// stocks one call per symbol; a failure only loses the tickers of that call.
func (s *holdingService) fetchAllPrices(ctx context.Context, holdings []domain.HoldingWithOwner) map[string]decimal.Decimal {
	var (
		mu      sync.Mutex
		prices  = make(map[string]decimal.Decimal)
		stocks  = make(map[string]struct{})
		cryptos = make(map[string]struct{})
		metals  bool
	)
	for _, h := range holdings {
		switch h.AssetType {
		case domain.Stock:
			stocks[strings.ToUpper(h.Ticker)] = struct{}{}
		case domain.Crypto:
			cryptos[strings.ToLower(h.Ticker)] = struct{}{}
		case domain.Metal:
			metals = true
		}
	}
	store := func(t domain.AssetType, found map[string]decimal.Decimal) {
		mu.Lock()
		defer mu.Unlock()
		for k, v := range found {
			prices[priceKey(t, k)] = v
		}
	}

	// Errors are logged and swallowed so one market never blocks another.
	var g errgroup.Group
	g.SetLimit(stockFetchParallel)
	if len(cryptos) > 0 {
		ids := make([]string, 0, len(cryptos))
		for id := range cryptos {
			ids = append(ids, id)
		}
		g.Go(func() error {
			found, err := s.prices.CryptoPrices(ctx, ids)
			if err != nil {
				s.LogWarn(ctx, "Crypto price fetch failed", slog.Int("ids", len(ids)), slog.String("error", err.Error()))
				return nil
			}
			store(domain.Crypto, found)
			return nil
		})
	}
	if metals {
		g.Go(func() error {
			found, err := s.prices.MetalPrices(ctx)
			if err != nil {
				s.LogWarn(ctx, "Metal price fetch failed", slog.String("error", err.Error()))
				return nil
			}
			store(domain.Metal, found)
			return nil
		})
	}
	for symbol := range stocks {
		g.Go(func() error {
			price, err := s.prices.StockPrice(ctx, symbol)
			if err != nil {
				s.LogWarn(ctx, "Stock price fetch failed", slog.String("symbol", symbol), slog.String("error", err.Error()))
				return nil
			}
			store(domain.Stock, map[string]decimal.Decimal{symbol: price})
			return nil
		})
	}
	_ = g.Wait()
	return prices
}

// RefreshHoldingPrices re-prices and revalues every holding of every user.
func (s *holdingService) RefreshHoldingPrices(ctx context.Context) (*domain.PriceRefreshSummary, error) {
	holdings, err := s.holdingRepo.ListAllHoldings(ctx)
	if err != nil {
		return nil, err
	}
	summary := &domain.PriceRefreshSummary{}
	if len(holdings) == 0 {
		return summary, nil
	}

	prices := s.fetchAllPrices(ctx, holdings)
	skipped := make(map[string]struct{})
	for _, h := range holdings {
		key := priceKey(h.AssetType, h.Ticker)
		price, ok := prices[key]
		if !ok {
			summary.Failed++
			if _, seen := skipped[key]; !seen {
				skipped[key] = struct{}{}
				summary.Skipped = append(summary.Skipped, h.Ticker)
			}
			continue
		}
		value, err := s.valuation(ctx, h.Quantity, price, h.BaseCurrency)
		if err != nil {
			s.LogWarn(ctx, "Holding valuation failed", slog.String("holding_id", h.HoldingID), slog.String("error", err.Error()))
			summary.Failed++
			continue
		}
		if err := s.holdingRepo.UpdateHoldingValuation(ctx, h.HoldingID, price, value); err != nil {
			s.LogError(ctx, err, "Failed to store holding valuation", slog.String("holding_id", h.HoldingID))
			summary.Failed++
			continue
		}
		summary.Updated++
	}
	s.LogInfo(ctx, "Holding prices refreshed",
		slog.Int("updated", summary.Updated), slog.Int("failed", summary.Failed))
	return summary, nil
}
