package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bittrader_scans_total", Help: "Signal scans completed"},
		[]string{"timeframe"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bittrader_signals_total", Help: "Signals emitted by the classifier"},
		[]string{"timeframe", "side"},
	)
	FetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bittrader_fetch_failures_total", Help: "Candle fetch failures isolated per asset"},
		[]string{"pair"},
	)
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bittrader_trades_total", Help: "Trade attempts by outcome"},
		[]string{"pair", "side", "result"},
	)
	TicksSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bittrader_ticks_skipped_total", Help: "Ticks skipped because the previous one was still running"},
		[]string{"task"},
	)
	TickFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bittrader_tick_failures_total", Help: "Ticks that ended with an error"},
		[]string{"task"},
	)
	TickDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "bittrader_tick_duration_seconds", Help: "Tick wall time", Buckets: prometheus.DefBuckets},
		[]string{"task"},
	)
)

func init() {
	prometheus.MustRegister(
		ScansTotal,
		SignalsTotal,
		FetchFailuresTotal,
		TradesTotal,
		TicksSkippedTotal,
		TickFailuresTotal,
		TickDuration,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
