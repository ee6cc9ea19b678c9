package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bittrader/internal/models"
)

var usdt = models.TradeConfig{Denominator: "USDT", Numerators: []string{"BTC", "ETH"}}

func TestRefreshBalances_Valuation(t *testing.T) {
	gw := &gatewayMock{}
	st := &storeMock{}

	gw.On("FetchBalances", mock.Anything).Return([]models.RawBalance{
		{Asset: "USDT", Free: 250},
		{Asset: "BTC", Free: 0.001},
		{Asset: "ETH", Free: 0},
		{Asset: "DUST", Free: 3},
		{Asset: "XRP", Free: 20},
	}, nil)
	gw.On("FetchCandles", mock.Anything, "BTC/USDT", "1m", 1).
		Return([]models.PricePoint{{Low: 40000, Close: 40100}}, nil)
	gw.On("FetchCandles", mock.Anything, "DUST/USDT", "1m", 1).
		Return(nil, models.ErrTransientFetch)
	gw.On("FetchCandles", mock.Anything, "XRP/USDT", "1m", 1).
		Return([]models.PricePoint{{Low: 0.4, Close: 0.41}}, nil)

	var saved []models.Balance
	st.On("ReplaceBalances", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]models.Balance) }).
		Return(nil)

	r := NewRefresher(gw, st, zap.NewNop())
	require.NoError(t, r.RefreshBalances(context.Background(), usdt))

	require.Len(t, saved, 4)
	assert.Equal(t, models.Balance{Asset: "USDT", Pair: "USDT/USDT", Free: 250, Valued: 250, Purchasable: true, Liquidatable: true}, saved[0])

	assert.Equal(t, "BTC/USDT", saved[1].Pair)
	assert.InDelta(t, 40.0, saved[1].Valued, 1e-9)
	assert.True(t, saved[1].Liquidatable)

	assert.Equal(t, "DUST", saved[2].Asset)
	assert.False(t, saved[2].Purchasable)
	assert.Zero(t, saved[2].Valued)
	assert.False(t, saved[2].Liquidatable)

	assert.InDelta(t, 8.0, saved[3].Valued, 1e-9)
	assert.True(t, saved[3].Purchasable)
	assert.False(t, saved[3].Liquidatable)

	gw.AssertNotCalled(t, "FetchCandles", mock.Anything, "USDT/USDT", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "FetchCandles", mock.Anything, "ETH/USDT", mock.Anything, mock.Anything)
}

func TestRefreshBalances_FetchFailure(t *testing.T) {
	gw := &gatewayMock{}
	st := &storeMock{}
	gw.On("FetchBalances", mock.Anything).Return(nil, models.ErrTransientFetch)

	err := NewRefresher(gw, st, zap.NewNop()).RefreshBalances(context.Background(), usdt)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTransientFetch)
	st.AssertNotCalled(t, "ReplaceBalances", mock.Anything, mock.Anything)
}

func TestRefreshTickersAndTrades(t *testing.T) {
	gw := &gatewayMock{}
	st := &storeMock{}
	pairs := []string{"BTC/USDT", "ETH/USDT"}

	tickers := []models.Ticker{{Pair: "BTC/USDT", Price: 1}, {Pair: "ETH/USDT", Price: 2}}
	trades := []models.TradeRecord{{ID: 7, Pair: "BTC/USDT", Side: models.SideBuy}}
	gw.On("FetchTickers", mock.Anything, pairs).Return(tickers, nil)
	gw.On("FetchTrades", mock.Anything, pairs).Return(trades, nil)
	st.On("ReplaceTickers", mock.Anything, tickers).Return(nil)
	st.On("ReplaceTrades", mock.Anything, trades).Return(errors.New("disk full"))

	r := NewRefresher(gw, st, zap.NewNop())
	require.NoError(t, r.RefreshTickers(context.Background(), usdt))

	err := r.RefreshTrades(context.Background(), usdt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store trades")

	st.AssertExpectations(t)
}
