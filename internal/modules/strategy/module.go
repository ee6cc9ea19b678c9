package strategy

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	exchange "bittrader/internal/modules/exchange/service"
	"bittrader/internal/modules/strategy/service"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(c *exchange.Client, log *zap.Logger) *service.Scanner {
				return service.NewScanner(c, log)
			},
		),
	)
}
