package service

import (
	"time"

	"bittrader/internal/indicator"
	"bittrader/internal/models"
)

// WindowSize — сколько выборок нужно для полос; осциллятор берёт последние 16.
const WindowSize = indicator.BandPeriod

// Window — прореженные close и их время, oldest-first.
type Window struct {
	Closes []float64
	Times  []time.Time
}

func (w Window) Complete() bool { return len(w.Closes) == WindowSize }

// OscillatorSlice — выборки 5..20 окна.
func (w Window) OscillatorSlice() []float64 {
	if !w.Complete() {
		return nil
	}
	return w.Closes[WindowSize-indicator.OscillatorWindow:]
}

func (w Window) BandSlice() []float64 {
	if !w.Complete() {
		return nil
	}
	return w.Closes
}

func (w Window) Last() float64 {
	if len(w.Closes) == 0 {
		return 0
	}
	return w.Closes[len(w.Closes)-1]
}

// Sample идёт от самой свежей свечи назад с шагом period*inHour и берёт
// min(20, len/step) выборок. Неполное окно не дополняется.
func Sample(candles []models.PricePoint, period, inHour int) Window {
	step := period * inHour
	if step <= 0 {
		return Window{}
	}
	n := len(candles) / step
	if n > WindowSize {
		n = WindowSize
	}

	w := Window{
		Closes: make([]float64, n),
		Times:  make([]time.Time, n),
	}
	for i := 0; i < n; i++ {
		c := candles[len(candles)-1-i*step]
		w.Closes[n-1-i] = c.Close
		w.Times[n-1-i] = c.Time
	}
	return w
}
