// scan — разовый прогон классификатора без записи и сделок. Печатает сигналы в stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"bittrader/internal/modules/config"
	"bittrader/internal/modules/exchange"
	"bittrader/internal/modules/settings"
	"bittrader/internal/modules/strategy"
	"bittrader/internal/modules/strategy/service"
	"bittrader/pkg/logger"
)

func main() {
	timeframe := flag.String("timeframe", "", "override timeframe from trading settings (3m, 5m, 15m, 30m, 1h)")
	flag.Parse()

	var exitCode int
	app := fx.New(
		fx.NopLogger,
		config.Module(),
		fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(cfg.Service.LogLevel)
		}),
		settings.Module(),
		exchange.Module(),
		strategy.Module(),
		fx.Invoke(func(lc fx.Lifecycle, sh fx.Shutdowner, st *settings.Store, sc *service.Scanner, log *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						if err := run(context.Background(), st, sc, *timeframe); err != nil {
							log.Error("scan failed", zap.Error(err))
							exitCode = 1
						}
						_ = sh.Shutdown()
					}()
					return nil
				},
			})
		}),
	)
	app.Run()
	os.Exit(exitCode)
}

func run(ctx context.Context, st *settings.Store, sc *service.Scanner, timeframe string) error {
	cfg, err := st.Load(ctx)
	if err != nil {
		return err
	}
	if timeframe != "" {
		cfg.Timeframe = timeframe
	}
	profile, err := service.ProfileFor(cfg.Timeframe)
	if err != nil {
		return err
	}

	signals := sc.Scan(ctx, cfg, profile)
	out, err := sonic.ConfigStd.MarshalIndent(signals, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
