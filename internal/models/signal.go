package models

import "time"

type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Signal — результат классификатора. После создания не меняется.
type Signal struct {
	Denominator string  `json:"denominator"`
	Numerator   string  `json:"numerator"`
	Pair        string  `json:"pair"`
	Timeframe   string  `json:"timeframe"`
	Period      int     `json:"period"`
	InHour      int     `json:"in_hour"` // свечей в часе для таймфрейма профиля
	StdDev      float64 `json:"std_dev"`
	OscLow      float64 `json:"osc_low"`
	OscHigh     float64 `json:"osc_high"`

	LastPrice   float64 `json:"last_price"`
	OscPrevious float64 `json:"osc_previous"`
	OscLatest   float64 `json:"osc_latest"`
	BandLower   float64 `json:"band_lower"`
	BandUpper   float64 `json:"band_upper"`

	IsBuy       bool      `json:"is_buy"`
	IsSell      bool      `json:"is_sell"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (s Signal) Side() Side {
	switch {
	case s.IsBuy:
		return SideBuy
	case s.IsSell:
		return SideSell
	}
	return SideNone
}
