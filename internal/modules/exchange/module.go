package exchange

import (
	"go.uber.org/fx"

	"bittrader/internal/modules/config"
	"bittrader/internal/modules/exchange/service"
)

// Module поднимает клиент биржи. Клиент неизменяемый и один на всё приложение.
func Module() fx.Option {
	return fx.Module("exchange",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(service.Config{
					BaseURL:    cfg.Exchange.BaseURL,
					WSURL:      cfg.Exchange.WSURL,
					APIKey:     cfg.Exchange.APIKey,
					APISecret:  cfg.Exchange.APISecret,
					RecvWindow: cfg.Exchange.RecvWindow,
					Timeout:    cfg.Exchange.Timeout,
				})
			},
		),
	)
}
