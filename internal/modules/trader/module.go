package trader

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	exchangeSvc "bittrader/internal/modules/exchange/service"
	storage "bittrader/internal/modules/storage/service"
	"bittrader/internal/modules/trader/service"
	"bittrader/internal/notify"
)

var _ service.Gateway = (*exchangeSvc.Client)(nil)

func Module() fx.Option {
	return fx.Module("trader",
		fx.Provide(
			func(c *exchangeSvc.Client, store storage.Store, log *zap.Logger) *service.Refresher {
				return service.NewRefresher(c, store, log)
			},
			func(c *exchangeSvc.Client, store storage.Store, r *service.Refresher, n notify.Notifier, log *zap.Logger) *service.Trader {
				return service.NewTrader(c, store, r, n, log)
			},
		),
	)
}
