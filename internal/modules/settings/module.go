package settings

import (
	"go.uber.org/fx"

	"bittrader/internal/modules/config"
)

func Module() fx.Option {
	return fx.Module("settings",
		fx.Provide(
			func(cfg *config.Config) *Store {
				return NewStore(cfg.SettingsFile)
			},
		),
	)
}
