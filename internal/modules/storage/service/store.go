package service

import (
	"context"

	"bittrader/internal/models"
)

// Store — хранилище сигналов и снимков биржи. Снимки заменяются целиком.
type Store interface {
	RecordSignal(ctx context.Context, s models.Signal) error
	ReplaceTickers(ctx context.Context, tickers []models.Ticker) error
	ReplaceBalances(ctx context.Context, balances []models.Balance) error
	ReplaceTrades(ctx context.Context, trades []models.TradeRecord) error

	// Signals — последние limit сигналов, новые первыми. limit <= 0 — все.
	Signals(ctx context.Context, limit int) ([]models.Signal, error)
	Tickers(ctx context.Context) ([]models.Ticker, error)
	Balances(ctx context.Context) ([]models.Balance, error)
	Trades(ctx context.Context) ([]models.TradeRecord, error)
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Postgres)(nil)
)
