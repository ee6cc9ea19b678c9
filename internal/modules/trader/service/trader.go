package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bittrader/internal/metrics"
	"bittrader/internal/models"
)

// Trader — вторая фаза пайплайна: сигналы уже классифицированы, здесь только запись и сделки.
type Trader struct {
	gw       Gateway
	store    Store
	refresh  *Refresher
	notifier Notifier
	log      *zap.Logger
}

func NewTrader(gw Gateway, store Store, refresh *Refresher, notifier Notifier, log *zap.Logger) *Trader {
	return &Trader{
		gw:       gw,
		store:    store,
		refresh:  refresh,
		notifier: notifier,
		log:      log.Named("trader"),
	}
}

// Evaluate обрабатывает сигналы по порядку. Ошибка одного сигнала не останавливает пачку,
// все ошибки собираются и возвращаются вызывающему.
func (t *Trader) Evaluate(ctx context.Context, cfg models.TradeConfig, signals []models.Signal) error {
	var errs error
	for _, sig := range signals {
		errs = multierr.Append(errs, t.handle(ctx, cfg, sig))
	}
	return errs
}

func (t *Trader) handle(ctx context.Context, cfg models.TradeConfig, sig models.Signal) error {
	log := t.log.With(
		zap.String("pair", sig.Pair),
		zap.String("timeframe", sig.Timeframe),
		zap.Int("period", sig.Period),
		zap.String("side", string(sig.Side())),
	)

	var errs error
	if err := t.store.RecordSignal(ctx, sig); err != nil {
		log.Error("record signal", zap.Error(err))
		errs = multierr.Append(errs, errors.Wrapf(err, "record signal %s", sig.Pair))
	}

	var exec func() error
	switch {
	case sig.IsBuy && cfg.AllowBuy:
		exec = func() error { return t.gw.ExecuteBuy(ctx, sig.Pair, cfg.Amount) }
	case sig.IsSell && cfg.AllowSell:
		exec = func() error { return t.gw.ExecuteSell(ctx, sig.Pair) }
	default:
		log.Debug("trade not allowed by policy")
		return errs
	}

	side := string(sig.Side())
	if err := exec(); err != nil {
		if !errors.Is(err, models.ErrTradeExecution) {
			err = fmt.Errorf("%w: %w", models.ErrTradeExecution, err)
		}
		metrics.TradesTotal.WithLabelValues(sig.Pair, side, "failed").Inc()
		log.Error("trade failed", zap.Error(err))
		t.notifier.Sendf("❗️ %s %s не исполнен: %v", side, sig.Pair, err)
		return multierr.Append(errs, err)
	}

	metrics.TradesTotal.WithLabelValues(sig.Pair, side, "executed").Inc()
	log.Info("trade executed", zap.Float64("last", sig.LastPrice), zap.Float64("amount", cfg.Amount))
	t.notifier.Sendf("✅ %s %s @ %.8g (%s, period %d)", side, sig.Pair, sig.LastPrice, sig.Timeframe, sig.Period)

	if err := t.refresh.RefreshTickers(ctx, cfg); err != nil {
		return multierr.Append(errs, err)
	}
	return multierr.Append(errs, t.refresh.RefreshBalances(ctx, cfg))
}
