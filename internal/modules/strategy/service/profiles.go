package service

import (
	"fmt"

	"bittrader/internal/models"
)

// Profiles — фиксированные параметры по таймфреймам: чем шире таймфрейм,
// тем уже пороги осциллятора и меньше множитель σ.
var Profiles = map[string]models.Profile{
	"3m": {
		Timeframe: "3m", InHour: 20, Periods: []int{1, 2},
		StdDev: 2.0, OscLow: 30, OscHigh: 70,
	},
	"5m": {
		Timeframe: "5m", InHour: 12, Periods: []int{1, 2, 3, 4},
		StdDev: 1.8, OscLow: 32, OscHigh: 68,
	},
	"15m": {
		Timeframe: "15m", InHour: 4, Periods: []int{1, 2, 3, 4, 6, 8, 10, 12},
		StdDev: 1.6, OscLow: 34, OscHigh: 66,
	},
	"30m": {
		Timeframe: "30m", InHour: 2, Periods: []int{1, 2, 3, 4, 6, 8, 10, 12, 24},
		StdDev: 1.4, OscLow: 36, OscHigh: 64,
	},
	"1h": {
		Timeframe: "1h", InHour: 1, Periods: []int{1, 2, 3, 4, 6, 8, 10, 12, 24},
		StdDev: 1.2, OscLow: 38, OscHigh: 62,
	},
}

func ProfileFor(timeframe string) (models.Profile, error) {
	p, ok := Profiles[timeframe]
	if !ok {
		return models.Profile{}, fmt.Errorf("%w: %q", models.ErrUnknownProfile, timeframe)
	}
	return p, nil
}
