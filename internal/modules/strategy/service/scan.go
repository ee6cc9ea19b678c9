package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bittrader/internal/indicator"
	"bittrader/internal/metrics"
	"bittrader/internal/models"
)

const candleLimit = 1000

// CandleSource — то, что скану нужно от биржи.
type CandleSource interface {
	FetchCandles(ctx context.Context, pair, timeframe string, limit int) ([]models.PricePoint, error)
}

// Scanner только классифицирует: ни записи, ни сделок.
type Scanner struct {
	src CandleSource
	log *zap.Logger
	now func() time.Time
}

func NewScanner(src CandleSource, log *zap.Logger) *Scanner {
	return &Scanner{src: src, log: log.Named("scan"), now: time.Now}
}

// Scan обходит numerators × periods профиля. Порядок: по активу, внутри — по периоду.
// Ошибка загрузки свечей одного актива не мешает остальным.
func (s *Scanner) Scan(ctx context.Context, cfg models.TradeConfig, p models.Profile) []models.Signal {
	generatedAt := s.now()
	var signals []models.Signal

	for _, numerator := range cfg.Numerators {
		if ctx.Err() != nil {
			break
		}
		pair := models.Pair(numerator, cfg.Denominator)

		candles, err := s.src.FetchCandles(ctx, pair, p.Timeframe, candleLimit)
		if err != nil {
			metrics.FetchFailuresTotal.WithLabelValues(pair).Inc()
			s.log.Warn("candle fetch failed, asset skipped",
				zap.String("pair", pair),
				zap.String("timeframe", p.Timeframe),
				zap.Error(err),
			)
			continue
		}

		for _, period := range p.Periods {
			sig, ok := s.evaluate(candles, cfg, p, numerator, period)
			if !ok {
				continue
			}
			sig.GeneratedAt = generatedAt
			metrics.SignalsTotal.WithLabelValues(p.Timeframe, string(sig.Side())).Inc()
			s.log.Info("signal",
				zap.String("pair", pair),
				zap.String("timeframe", p.Timeframe),
				zap.Int("period", period),
				zap.String("side", string(sig.Side())),
				zap.Float64("last", sig.LastPrice),
				zap.Float64("osc_prev", sig.OscPrevious),
				zap.Float64("osc_last", sig.OscLatest),
			)
			signals = append(signals, sig)
		}
	}

	metrics.ScansTotal.WithLabelValues(p.Timeframe).Inc()
	return signals
}

func (s *Scanner) evaluate(candles []models.PricePoint, cfg models.TradeConfig, p models.Profile, numerator string, period int) (models.Signal, bool) {
	pair := models.Pair(numerator, cfg.Denominator)

	w := Sample(candles, period, p.InHour)
	if !w.Complete() {
		s.log.Debug("not enough candles",
			zap.String("pair", pair),
			zap.String("timeframe", p.Timeframe),
			zap.Int("period", period),
			zap.Int("candles", len(candles)),
			zap.Int("samples", len(w.Closes)),
		)
		return models.Signal{}, false
	}

	osc, oscOK := indicator.ComputeOscillator(w.OscillatorSlice())
	bands, bandsOK := indicator.ComputeBands(w.BandSlice(), p.StdDev)
	r := Reading{
		LastPrice:    w.Last(),
		Oscillator:   osc,
		OscillatorOK: oscOK,
		Bands:        bands,
		BandsOK:      bandsOK,
	}

	side := Classify(r, Thresholds{Low: p.OscLow, High: p.OscHigh})
	if side == models.SideNone {
		return models.Signal{}, false
	}

	return models.Signal{
		Denominator: cfg.Denominator,
		Numerator:   numerator,
		Pair:        pair,
		Timeframe:   p.Timeframe,
		Period:      period,
		InHour:      p.InHour,
		StdDev:      p.StdDev,
		OscLow:      p.OscLow,
		OscHigh:     p.OscHigh,
		LastPrice:   r.LastPrice,
		OscPrevious: osc.Previous,
		OscLatest:   osc.Latest,
		BandLower:   bands.Lower,
		BandUpper:   bands.Upper,
		IsBuy:       side == models.SideBuy,
		IsSell:      side == models.SideSell,
	}, true
}
