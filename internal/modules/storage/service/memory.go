package service

import (
	"context"
	"sync"

	"bittrader/internal/models"
)

// Memory — хранилище в памяти процесса, для запуска без DSN и тестов.
type Memory struct {
	mu       sync.RWMutex
	signals  []models.Signal
	tickers  []models.Ticker
	balances []models.Balance
	trades   []models.TradeRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) RecordSignal(_ context.Context, s models.Signal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = append(m.signals, s)
	return nil
}

func (m *Memory) ReplaceTickers(_ context.Context, tickers []models.Ticker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickers = append([]models.Ticker(nil), tickers...)
	return nil
}

func (m *Memory) ReplaceBalances(_ context.Context, balances []models.Balance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances = append([]models.Balance(nil), balances...)
	return nil
}

func (m *Memory) ReplaceTrades(_ context.Context, trades []models.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append([]models.TradeRecord(nil), trades...)
	return nil
}

func (m *Memory) Signals(_ context.Context, limit int) ([]models.Signal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.signals)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Signal, 0, n)
	for i := len(m.signals) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.signals[i])
	}
	return out, nil
}

func (m *Memory) Tickers(_ context.Context) ([]models.Ticker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Ticker(nil), m.tickers...), nil
}

func (m *Memory) Balances(_ context.Context) ([]models.Balance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Balance(nil), m.balances...), nil
}

func (m *Memory) Trades(_ context.Context) ([]models.TradeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.TradeRecord(nil), m.trades...), nil
}
