package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"bittrader/internal/metrics"
	"bittrader/internal/modules/config"
	"bittrader/internal/modules/health/service"
	scheduler "bittrader/internal/modules/scheduler/service"
)

type Config struct {
	Addr string // например ":8080"

	// задача считается зависшей, если не отработала за 3 своих интервала
	StaleAfter map[string]time.Duration
}

func NewConfig(cfg *config.Config) Config {
	return Config{
		Addr: fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.AdminPort),
		StaleAfter: map[string]time.Duration{
			scheduler.RefreshTask: 3 * cfg.Scheduler.RefreshInterval,
			scheduler.ScanTask:    3 * cfg.Scheduler.ScanInterval,
		},
	}
}

type taskView struct {
	LastRunUnix int64  `json:"lastRunUnix"`
	LastError   string `json:"lastError,omitempty"`
	Runs        int64  `json:"runs"`
	Failures    int64  `json:"failures"`
}

func NewMux(cfg Config, state *service.State) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		// liveness: процесс жив
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		// readiness: планировщик запущен и задачи не зависли
		if !state.Ready() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		if stale := state.Stale(time.Now(), cfg.StaleAfter); len(stale) > 0 {
			sort.Strings(stale)
			http.Error(w, fmt.Sprintf("stale tasks: %v", stale), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// полезный JSON для отладки
		tasks := map[string]taskView{}
		for name, st := range state.Tasks() {
			v := taskView{LastError: st.LastError, Runs: st.Runs, Failures: st.Failures}
			if !st.LastRun.IsZero() {
				v.LastRunUnix = st.LastRun.Unix()
			}
			tasks[name] = v
		}
		resp := map[string]any{
			"ready":     state.Ready(),
			"uptimeSec": int64(state.Uptime().Seconds()),
			"tasks":     tasks,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(resp)
	})

	mux.Handle("/metrics", metrics.Handler())

	return mux
}

func RunHTTP(lc fx.Lifecycle, cfg Config, mux *http.ServeMux, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			log.Info("[BOOT] admin http listening", zap.String("addr", cfg.Addr))
			go func() { _ = srv.Serve(ln) }()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func Module() fx.Option {
	return fx.Module("health",
		fx.Provide(
			service.NewState,
			NewConfig,
			NewMux,
		),
		fx.Invoke(RunHTTP),
	)
}
