package main

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"bittrader/internal/modules/config"
	"bittrader/internal/modules/exchange"
	"bittrader/internal/modules/health"
	"bittrader/internal/modules/scheduler"
	"bittrader/internal/modules/settings"
	"bittrader/internal/modules/storage"
	"bittrader/internal/modules/strategy"
	"bittrader/internal/modules/trader"
	"bittrader/internal/notify"
	"bittrader/pkg/logger"
	"bittrader/pkg/tracing"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger.SetServiceName(cfg.Service.Name)
	tracing.SetServiceName(cfg.Service.Name)
	return logger.New(cfg.Service.LogLevel)
}

func setupTimezone(cfg *config.Config, log *zap.Logger) {
	if cfg.Service.Timezone == "" {
		return
	}
	loc, err := time.LoadLocation(cfg.Service.Timezone)
	if err != nil {
		log.Warn("[BOOT] unknown timezone, keeping local", zap.String("tz", cfg.Service.Timezone), zap.Error(err))
		return
	}
	time.Local = loc
}

func setupTracing(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) error {
	_, closer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Tracing.Host,
		Port: cfg.Tracing.Port,
	})
	if err != nil {
		return err
	}
	if cfg.Tracing.Host != "" {
		log.Info("[BOOT] jaeger tracing enabled", zap.String("host", cfg.Tracing.Host), zap.Int("port", cfg.Tracing.Port))
	}
	lc.Append(fx.StopHook(closer))
	return nil
}

func main() {
	fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config.Module(),
		fx.Provide(newLogger),
		fx.Invoke(setupTimezone, setupTracing),
		settings.Module(),
		exchange.Module(),
		storage.Module(),
		notify.Module(),
		strategy.Module(),
		trader.Module(),
		health.Module(),
		scheduler.Module(),
	).Run()
}
