package storage

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"bittrader/internal/modules/config"
	"bittrader/internal/modules/storage/service"
	"bittrader/pkg/db"
)

// Module даёт service.Store: Postgres, если задан DSN, иначе память процесса.
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (service.Store, error) {
				if cfg.DB == "" {
					log.Warn("[BOOT] db_dsn is empty, signals are kept in memory")
					return service.NewMemory(), nil
				}

				ctx := context.Background()
				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}
				if err = poolMaster.Ping(ctx); err != nil {
					poolMaster.Close()
					return nil, err
				}

				tx := db.NewPgTxManager(poolMaster)
				pg := service.NewPostgres(tx)
				if err = pg.Migrate(ctx); err != nil {
					tx.Close()
					return nil, err
				}

				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						tx.Close()
						return nil
					},
				})
				return pg, nil
			},
		),
	)
}
