package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"bittrader/internal/models"
)

type gatewayMock struct {
	mock.Mock
}

func (m *gatewayMock) FetchCandles(ctx context.Context, pair, timeframe string, limit int) ([]models.PricePoint, error) {
	args := m.Called(ctx, pair, timeframe, limit)
	pts, _ := args.Get(0).([]models.PricePoint)
	return pts, args.Error(1)
}

func (m *gatewayMock) FetchBalances(ctx context.Context) ([]models.RawBalance, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.RawBalance)
	return out, args.Error(1)
}

func (m *gatewayMock) FetchTickers(ctx context.Context, pairs []string) ([]models.Ticker, error) {
	args := m.Called(ctx, pairs)
	out, _ := args.Get(0).([]models.Ticker)
	return out, args.Error(1)
}

func (m *gatewayMock) FetchTrades(ctx context.Context, pairs []string) ([]models.TradeRecord, error) {
	args := m.Called(ctx, pairs)
	out, _ := args.Get(0).([]models.TradeRecord)
	return out, args.Error(1)
}

func (m *gatewayMock) ExecuteBuy(ctx context.Context, pair string, quoteAmount float64) error {
	return m.Called(ctx, pair, quoteAmount).Error(0)
}

func (m *gatewayMock) ExecuteSell(ctx context.Context, pair string) error {
	return m.Called(ctx, pair).Error(0)
}

type storeMock struct {
	mock.Mock
}

func (m *storeMock) RecordSignal(ctx context.Context, s models.Signal) error {
	return m.Called(ctx, s).Error(0)
}

func (m *storeMock) ReplaceTickers(ctx context.Context, tickers []models.Ticker) error {
	return m.Called(ctx, tickers).Error(0)
}

func (m *storeMock) ReplaceBalances(ctx context.Context, balances []models.Balance) error {
	return m.Called(ctx, balances).Error(0)
}

func (m *storeMock) ReplaceTrades(ctx context.Context, trades []models.TradeRecord) error {
	return m.Called(ctx, trades).Error(0)
}

// notifierStub копит сообщения.
type notifierStub struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notifierStub) Send(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *notifierStub) Sendf(format string, args ...any) { n.Send(fmt.Sprintf(format, args...)) }

func (n *notifierStub) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}
