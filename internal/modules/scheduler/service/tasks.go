package service

import (
	"context"

	"bittrader/internal/models"
	strategy "bittrader/internal/modules/strategy/service"
)

const (
	RefreshTask = "refresh"
	ScanTask    = "scan"
)

type ConfigLoader interface {
	Load(ctx context.Context) (models.TradeConfig, error)
}

type StateRefresher interface {
	RefreshTickers(ctx context.Context, cfg models.TradeConfig) error
	RefreshBalances(ctx context.Context, cfg models.TradeConfig) error
	RefreshTrades(ctx context.Context, cfg models.TradeConfig) error
}

type SignalScanner interface {
	Scan(ctx context.Context, cfg models.TradeConfig, p models.Profile) []models.Signal
}

type SignalEvaluator interface {
	Evaluate(ctx context.Context, cfg models.TradeConfig, signals []models.Signal) error
}

// RefreshFunc: тикеры, балансы, сделки по порядку; первая ошибка завершает тик.
func RefreshFunc(settings ConfigLoader, r StateRefresher) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cfg, err := settings.Load(ctx)
		if err != nil {
			return err
		}
		for _, step := range []func(context.Context, models.TradeConfig) error{
			r.RefreshTickers,
			r.RefreshBalances,
			r.RefreshTrades,
		} {
			if err := step(ctx, cfg); err != nil {
				return err
			}
		}
		return nil
	}
}

// ScanFunc: одна фаза классификации по профилю таймфрейма, затем сделки.
func ScanFunc(settings ConfigLoader, sc SignalScanner, ev SignalEvaluator) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cfg, err := settings.Load(ctx)
		if err != nil {
			return err
		}
		profile, err := strategy.ProfileFor(cfg.Timeframe)
		if err != nil {
			return err
		}
		signals := sc.Scan(ctx, cfg, profile)
		if len(signals) == 0 {
			return nil
		}
		return ev.Evaluate(ctx, cfg, signals)
	}
}
