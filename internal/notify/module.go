package notify

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"bittrader/internal/modules/config"
	storage "bittrader/internal/modules/storage/service"
)

// Module даёт Notifier: Telegram при заданных token/chat_id, иначе лог.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config, store storage.Store, log *zap.Logger) (Notifier, error) {
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					log.Info("[BOOT] telegram is not configured, notifications go to log")
					return NewLog(log), nil
				}

				tg, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, store, log)
				if err != nil {
					return nil, err
				}

				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						return tg.Start(ctx)
					},
					OnStop: func(context.Context) error {
						cancel()
						tg.Stop()
						return nil
					},
				})
				return tg, nil
			},
		),
	)
}
