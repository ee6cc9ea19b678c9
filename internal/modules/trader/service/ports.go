package service

import (
	"context"

	"bittrader/internal/models"
)

// Gateway — операции биржи, нужные трейдеру и рефрешеру.
type Gateway interface {
	FetchCandles(ctx context.Context, pair, timeframe string, limit int) ([]models.PricePoint, error)
	FetchBalances(ctx context.Context) ([]models.RawBalance, error)
	FetchTickers(ctx context.Context, pairs []string) ([]models.Ticker, error)
	FetchTrades(ctx context.Context, pairs []string) ([]models.TradeRecord, error)
	ExecuteBuy(ctx context.Context, pair string, quoteAmount float64) error
	ExecuteSell(ctx context.Context, pair string) error
}

// Store — запись сигналов и полная замена снимков.
type Store interface {
	RecordSignal(ctx context.Context, s models.Signal) error
	ReplaceTickers(ctx context.Context, tickers []models.Ticker) error
	ReplaceBalances(ctx context.Context, balances []models.Balance) error
	ReplaceTrades(ctx context.Context, trades []models.TradeRecord) error
}

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}
