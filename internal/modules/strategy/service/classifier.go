package service

import (
	"bittrader/internal/indicator"
	"bittrader/internal/models"
)

type Thresholds struct {
	Low  float64
	High float64
}

// Reading — входы классификатора. *OK=false — индикатор недоступен.
type Reading struct {
	LastPrice    float64
	Oscillator   indicator.Oscillator
	OscillatorOK bool
	Bands        indicator.Bands
	BandsOK      bool
}

// Classify: покупка — осциллятор вышел вверх из перепроданности и цена на/под нижней полосой;
// продажа — зеркально. Покупка проверяется первой, исходы взаимоисключающие.
func Classify(r Reading, th Thresholds) models.Side {
	if !r.OscillatorOK || !r.BandsOK || r.LastPrice <= 0 {
		return models.SideNone
	}
	osc, bb := r.Oscillator, r.Bands

	if osc.Previous <= th.Low && osc.Latest > th.Low && bb.Lower >= r.LastPrice {
		return models.SideBuy
	}
	if osc.Previous >= th.High && osc.Latest < th.High && bb.Upper <= r.LastPrice {
		return models.SideSell
	}
	return models.SideNone
}
