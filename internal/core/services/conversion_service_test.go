package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/SscSPs/pfm_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConvertCurrent_SameCurrencyIsIdentity(t *testing.T) {
	rates := new(MockRateReader)
	svc := services.NewConversionService(rates)

	got, err := svc.ConvertCurrent(context.Background(), dec("1234.5678"), "JPY", "JPY")

	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1234.5678")))
	rates.AssertNotCalled(t, "GetCurrentRate", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertHistorical_SameCurrencyIsIdentity(t *testing.T) {
	rates := new(MockRateReader)
	svc := services.NewConversionService(rates)

	got, err := svc.ConvertHistorical(context.Background(), dec("10"), "USD", "USD", time.Time{})

	require.NoError(t, err)
	assert.True(t, got.Equal(dec("10")))
	rates.AssertNotCalled(t, "GetHistoricalRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertCurrent_PropagatesMissingRate(t *testing.T) {
	rates := new(MockRateReader)
	rates.On("GetCurrentRate", mock.Anything, "USD", "JPY").
		Return(decimal.Zero, apperrors.NewDataIntegrityError("CurrencyRate", "current rate missing for USD->JPY", nil))
	svc := services.NewConversionService(rates)

	_, err := svc.ConvertCurrent(context.Background(), dec("1"), "USD", "JPY")

	assert.Equal(t, apperrors.KindDataIntegrity, apperrors.KindOf(err))
}

func TestBatchConvert_MatchesSingleConversions(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.putCurrentRate("EUR", "USD", "1.087")
	store.putCurrentRate("INR", "USD", "0.01205")
	rateSvc := services.NewCurrencyRateService(store, new(MockRateProvider))
	svc := services.NewConversionService(rateSvc)

	items := []domain.MoneyAmount{
		{Amount: dec("10"), Currency: "EUR"},
		{Amount: dec("500"), Currency: "INR"},
		{Amount: dec("7.25"), Currency: "USD"},
		{Amount: dec("3"), Currency: "EUR"},
	}
	store.currentRateQueries = 0

	batch, err := svc.BatchConvert(ctx, items, "USD")
	require.NoError(t, err)
	assert.Equal(t, 1, store.currentRateQueries)
	require.Len(t, batch, len(items))

	for i, item := range items {
		single, err := svc.ConvertCurrent(ctx, item.Amount, item.Currency, "USD")
		require.NoError(t, err)
		assert.True(t, single.Equal(batch[i]), "item %d: batch %s single %s", i, batch[i], single)
	}
	assert.True(t, batch[2].Equal(dec("7.25")))
}

func TestConvertCurrent_RoundTripKeepsPrecision(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.putCurrentRate("USD", "EUR", "0.8731")
	store.putCurrentRate("EUR", "USD", "1.145344175924865")
	svc := services.NewConversionService(services.NewCurrencyRateService(store, new(MockRateProvider)))

	for _, amount := range []string{"0.01", "1234.56", "999999.99"} {
		original := dec(amount)
		eur, err := svc.ConvertCurrent(ctx, original, "USD", "EUR")
		require.NoError(t, err)
		back, err := svc.ConvertCurrent(ctx, eur, "EUR", "USD")
		require.NoError(t, err)

		assert.True(t, back.Sub(original).Abs().LessThanOrEqual(dec("0.01")), "%s came back as %s", original, back)
	}
}

func TestBatchConvertHistorical_OneLookupPerPairAndDay(t *testing.T) {
	ctx := context.Background()
	day := utcDate(2025, time.February, 3)
	rates := new(MockRateReader)
	rates.On("GetHistoricalRate", ctx, "EUR", "USD", day).Return(dec("1.1"), nil).Once()
	rates.On("GetHistoricalRate", ctx, "EUR", "USD", day.AddDate(0, 0, 1)).Return(dec("1.2"), nil).Once()
	svc := services.NewConversionService(rates)

	got, err := svc.BatchConvertHistorical(ctx, []domain.MoneyAmount{
		{Amount: dec("10"), Currency: "EUR", Date: day.Add(9 * time.Hour)},
		{Amount: dec("20"), Currency: "EUR", Date: day.Add(18 * time.Hour)},
		{Amount: dec("10"), Currency: "EUR", Date: day.AddDate(0, 0, 1)},
	}, "USD")

	require.NoError(t, err)
	assert.True(t, got[0].Equal(dec("11")))
	assert.True(t, got[1].Equal(dec("22")))
	assert.True(t, got[2].Equal(dec("12")))
	rates.AssertExpectations(t)
}

func TestTotalConverted_ValidatesBeforeConverting(t *testing.T) {
	ctx := context.Background()
	rates := new(MockRateReader)
	svc := services.NewConversionService(rates)

	_, err := svc.TotalConverted(ctx, []domain.MoneyAmount{{Amount: dec("1"), Currency: "usd"}}, "USD")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.TotalConvertedHistorical(ctx, []domain.MoneyAmount{
		{Amount: dec("1"), Currency: "EUR", Date: utcDate(2025, time.January, 1)},
		{Amount: dec("1"), Currency: "EUR"},
	}, "USD")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	rates.AssertNotCalled(t, "GetCurrentRates", mock.Anything, mock.Anything)
	rates.AssertNotCalled(t, "GetHistoricalRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTotalConverted_SumsWithoutRounding(t *testing.T) {
	rates := new(MockRateReader)
	rates.On("GetCurrentRates", mock.Anything, []domain.CurrencyPair{{From: "EUR", To: "USD"}}).
		Return(map[domain.CurrencyPair]decimal.Decimal{{From: "EUR", To: "USD"}: dec("1.0833")}, nil).Once()
	svc := services.NewConversionService(rates)

	total, err := svc.TotalConverted(context.Background(), []domain.MoneyAmount{
		{Amount: dec("10.005"), Currency: "USD"},
		{Amount: dec("1"), Currency: "EUR"},
	}, "USD")

	require.NoError(t, err)
	assert.True(t, total.Equal(dec("11.0883")), "got %s", total)
}
