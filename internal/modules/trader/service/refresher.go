package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"bittrader/internal/models"
)

// интервал свечи для оценки балансов
const valuationTimeframe = "1m"

// Refresher перезаписывает снимки тикеров, балансов и сделок целиком.
type Refresher struct {
	gw    Gateway
	store Store
	log   *zap.Logger
}

func NewRefresher(gw Gateway, store Store, log *zap.Logger) *Refresher {
	return &Refresher{gw: gw, store: store, log: log.Named("refresh")}
}

func (r *Refresher) RefreshTickers(ctx context.Context, cfg models.TradeConfig) error {
	tickers, err := r.gw.FetchTickers(ctx, cfg.Pairs())
	if err != nil {
		return errors.Wrap(err, "refresh tickers")
	}
	return errors.Wrap(r.store.ReplaceTickers(ctx, tickers), "store tickers")
}

func (r *Refresher) RefreshBalances(ctx context.Context, cfg models.TradeConfig) error {
	raw, err := r.gw.FetchBalances(ctx)
	if err != nil {
		return errors.Wrap(err, "refresh balances")
	}
	return errors.Wrap(r.store.ReplaceBalances(ctx, r.value(ctx, cfg.Denominator, raw)), "store balances")
}

func (r *Refresher) RefreshTrades(ctx context.Context, cfg models.TradeConfig) error {
	trades, err := r.gw.FetchTrades(ctx, cfg.Pairs())
	if err != nil {
		return errors.Wrap(err, "refresh trades")
	}
	return errors.Wrap(r.store.ReplaceTrades(ctx, trades), "store trades")
}

// value оценивает балансы в деноминаторе: сам деноминатор 1:1,
// остальное по low последней минутной свечи. Пара без свечей помечается непокупаемой.
func (r *Refresher) value(ctx context.Context, denominator string, raw []models.RawBalance) []models.Balance {
	out := make([]models.Balance, 0, len(raw))
	for _, b := range raw {
		if b.Free <= 0 {
			continue
		}
		bal := models.Balance{
			Asset:       b.Asset,
			Pair:        models.Pair(b.Asset, denominator),
			Free:        b.Free,
			Purchasable: true,
		}

		if b.Asset == denominator {
			bal.Valued = b.Free
		} else {
			candles, err := r.gw.FetchCandles(ctx, bal.Pair, valuationTimeframe, 1)
			switch {
			case err != nil:
				bal.Purchasable = false
				r.log.Debug("no market for balance", zap.String("pair", bal.Pair), zap.Error(err))
			case len(candles) > 0 && candles[len(candles)-1].Low > 0:
				bal.Valued = b.Free * candles[len(candles)-1].Low
			}
		}

		bal.Liquidatable = bal.Valued > models.MinLiquidatableValue
		out = append(out, bal)
	}
	return out
}
