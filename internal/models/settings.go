package models

import "strings"

// TradeConfig перечитывается на каждом тике, не кэшируется.
type TradeConfig struct {
	Denominator string
	Numerators  []string
	AllowBuy    bool
	AllowSell   bool
	Amount      float64 // фиксированная сумма покупки в деноминаторе
	Timeframe   string
}

// Pairs — все торгуемые пары в порядке numerators.
func (c TradeConfig) Pairs() []string {
	out := make([]string, 0, len(c.Numerators))
	for _, n := range c.Numerators {
		out = append(out, Pair(n, c.Denominator))
	}
	return out
}

// Pair собирает пару в формате BASE/QUOTE.
func Pair(numerator, denominator string) string {
	return numerator + "/" + denominator
}

// SplitPair — обратное к Pair.
func SplitPair(pair string) (base, quote string, ok bool) {
	base, quote, ok = strings.Cut(pair, "/")
	if !ok || base == "" || quote == "" {
		return "", "", false
	}
	return base, quote, true
}

// Profile — параметры одного таймфрейма.
type Profile struct {
	Timeframe string
	InHour    int
	Periods   []int
	StdDev    float64
	OscLow    float64
	OscHigh   float64
}
