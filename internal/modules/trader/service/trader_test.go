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

func buySignal(num string) models.Signal {
	return models.Signal{Denominator: "USDT", Numerator: num, Pair: num + "/USDT", Timeframe: "3m", Period: 1, LastPrice: 99, IsBuy: true}
}

func sellSignal(num string) models.Signal {
	return models.Signal{Denominator: "USDT", Numerator: num, Pair: num + "/USDT", Timeframe: "3m", Period: 2, LastPrice: 101, IsSell: true}
}

func newTrader(gw *gatewayMock, st *storeMock) (*Trader, *notifierStub) {
	n := &notifierStub{}
	return NewTrader(gw, st, NewRefresher(gw, st, zap.NewNop()), n, zap.NewNop()), n
}

// ожидания полной перезаписи тикеров и балансов после сделки
func expectRefresh(gw *gatewayMock, st *storeMock) {
	gw.On("FetchTickers", mock.Anything, mock.Anything).Return([]models.Ticker{}, nil)
	gw.On("FetchBalances", mock.Anything).Return([]models.RawBalance{{Asset: "USDT", Free: 100}}, nil)
	st.On("ReplaceTickers", mock.Anything, mock.Anything).Return(nil)
	st.On("ReplaceBalances", mock.Anything, mock.Anything).Return(nil)
}

func TestEvaluate_BuyNotAllowed(t *testing.T) {
	gw := &gatewayMock{}
	st := &storeMock{}
	sig := buySignal("BTC")
	st.On("RecordSignal", mock.Anything, sig).Return(nil).Once()

	tr, n := newTrader(gw, st)
	cfg := models.TradeConfig{Denominator: "USDT", Numerators: []string{"BTC"}, AllowBuy: false, AllowSell: true, Amount: 15}

	require.NoError(t, tr.Evaluate(context.Background(), cfg, []models.Signal{sig}))

	st.AssertExpectations(t)
	gw.AssertNotCalled(t, "ExecuteBuy", mock.Anything, mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "FetchTickers", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "FetchBalances", mock.Anything)
	st.AssertNotCalled(t, "ReplaceBalances", mock.Anything, mock.Anything)
	assert.Empty(t, n.Messages())
}

func TestEvaluate_BuyAndSell(t *testing.T) {
	gw := &gatewayMock{}
	st := &storeMock{}
	cfg := models.TradeConfig{Denominator: "USDT", Numerators: []string{"BTC", "ETH"}, AllowBuy: true, AllowSell: true, Amount: 15}

	st.On("RecordSignal", mock.Anything, mock.Anything).Return(nil)
	gw.On("ExecuteBuy", mock.Anything, "BTC/USDT", 15.0).Return(nil).Once()
	gw.On("ExecuteSell", mock.Anything, "ETH/USDT").Return(nil).Once()
	expectRefresh(gw, st)

	tr, n := newTrader(gw, st)
	require.NoError(t, tr.Evaluate(context.Background(), cfg, []models.Signal{buySignal("BTC"), sellSignal("ETH")}))

	gw.AssertExpectations(t)
	st.AssertNumberOfCalls(t, "RecordSignal", 2)
	gw.AssertNumberOfCalls(t, "FetchTickers", 2)
	gw.AssertNumberOfCalls(t, "FetchBalances", 2)
	assert.Len(t, n.Messages(), 2)
}

func TestEvaluate_ExecutionFailureSkipsRefreshAndContinues(t *testing.T) {
	gw := &gatewayMock{}
	st := &storeMock{}
	cfg := models.TradeConfig{Denominator: "USDT", Numerators: []string{"BTC", "ETH"}, AllowBuy: true, AllowSell: true, Amount: 15}

	st.On("RecordSignal", mock.Anything, mock.Anything).Return(nil)
	gw.On("ExecuteBuy", mock.Anything, "BTC/USDT", 15.0).Return(errors.New("insufficient balance")).Once()
	gw.On("ExecuteSell", mock.Anything, "ETH/USDT").Return(nil).Once()
	expectRefresh(gw, st)

	tr, n := newTrader(gw, st)
	err := tr.Evaluate(context.Background(), cfg, []models.Signal{buySignal("BTC"), sellSignal("ETH")})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTradeExecution)
	gw.AssertExpectations(t)
	// обновление только после успешной продажи ETH
	gw.AssertNumberOfCalls(t, "FetchTickers", 1)
	gw.AssertNumberOfCalls(t, "FetchBalances", 1)
	require.Len(t, n.Messages(), 2)
	assert.Contains(t, n.Messages()[0], "BTC/USDT")
}

func TestEvaluate_RecordFailureDoesNotBlockTrade(t *testing.T) {
	gw := &gatewayMock{}
	st := &storeMock{}
	cfg := models.TradeConfig{Denominator: "USDT", Numerators: []string{"ETH"}, AllowSell: true}

	st.On("RecordSignal", mock.Anything, mock.Anything).Return(errors.New("db down"))
	gw.On("ExecuteSell", mock.Anything, "ETH/USDT").Return(nil).Once()
	expectRefresh(gw, st)

	tr, _ := newTrader(gw, st)
	err := tr.Evaluate(context.Background(), cfg, []models.Signal{sellSignal("ETH")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	gw.AssertExpectations(t)
}

func TestEvaluate_Empty(t *testing.T) {
	tr, _ := newTrader(&gatewayMock{}, &storeMock{})
	assert.NoError(t, tr.Evaluate(context.Background(), models.TradeConfig{}, nil))
}
