package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"bittrader/internal/modules/config"
	health "bittrader/internal/modules/health/service"
	"bittrader/internal/modules/scheduler/service"
	"bittrader/internal/modules/settings"
	strategy "bittrader/internal/modules/strategy/service"
	trader "bittrader/internal/modules/trader/service"
	"bittrader/internal/notify"
)

type Params struct {
	fx.In

	Cfg       *config.Config
	Settings  *settings.Store
	Scanner   *strategy.Scanner
	Trader    *trader.Trader
	Refresher *trader.Refresher
	State     *health.State
	Log       *zap.Logger
}

func New(p Params) *service.Scheduler {
	return service.New(p.Log, p.State,
		service.Task{
			Name:       service.RefreshTask,
			Interval:   p.Cfg.Scheduler.RefreshInterval,
			RunAtStart: true,
			Run:        service.RefreshFunc(p.Settings, p.Refresher),
		},
		service.Task{
			Name:     service.ScanTask,
			Interval: p.Cfg.Scheduler.ScanInterval,
			Run:      service.ScanFunc(p.Settings, p.Scanner, p.Trader),
		},
	)
}

// triggerCommand — ответ телеграм-команды, запускающей задачу вне расписания.
func triggerCommand(s *service.Scheduler, task string) notify.Command {
	return func(ctx context.Context) (string, error) {
		ran, err := s.Trigger(ctx, task)
		if err != nil {
			return "", err
		}
		if !ran {
			return fmt.Sprintf("⏳ %s уже выполняется", task), nil
		}
		return fmt.Sprintf("✅ %s выполнен", task), nil
	}
}

func Module() fx.Option {
	return fx.Module("scheduler",
		fx.Provide(New),
		fx.Invoke(func(lc fx.Lifecycle, s *service.Scheduler, state *health.State, n notify.Notifier) {
			if tg, ok := n.(*notify.Telegram); ok {
				tg.OnCommand(service.RefreshTask, triggerCommand(s, service.RefreshTask))
				tg.OnCommand(service.ScanTask, triggerCommand(s, service.ScanTask))
			}
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					// тики живут дольше OnStart-контекста
					s.Start(context.Background())
					state.SetReady(true)
					return nil
				},
				OnStop: func(_ context.Context) error {
					state.SetReady(false)
					s.Stop()
					return nil
				},
			})
		}),
	)
}
