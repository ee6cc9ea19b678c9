// Package indicator содержит чистые функции индикаторов над окнами фиксированной длины.
// Несовпадение длины окна — не ошибка: функции возвращают false.
package indicator

import "math"

const (
	OscillatorPeriod = 14
	OscillatorWindow = OscillatorPeriod + 2 // пара previous/latest
	BandPeriod       = 20
)

// Oscillator — два последних значения RSI.
type Oscillator struct {
	Previous float64
	Latest   float64
}

type Bands struct {
	Lower  float64
	Middle float64
	Upper  float64
}

// keepDecimalFixed округляет до n знаков.
func keepDecimalFixed(v float64, n int) float64 {
	mul := math.Pow(10, float64(n))
	return math.Round(v*mul) / mul
}
