package indicator

// ComputeOscillator считает RSI(14) со сглаживанием Уайлдера.
// Нужно ровно 16 значений: первое RSI после 14 изменений, второе после 15.
func ComputeOscillator(window []float64) (Oscillator, bool) {
	if len(window) != OscillatorWindow {
		return Oscillator{}, false
	}

	period := float64(OscillatorPeriod)
	var avgGain, avgLoss float64
	for i := 1; i <= OscillatorPeriod; i++ {
		gain, loss := change(window[i-1], window[i])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= period
	avgLoss /= period

	out := make([]float64, 0, 2)
	out = append(out, rsi(avgGain, avgLoss))
	for i := OscillatorPeriod + 1; i < len(window); i++ {
		gain, loss := change(window[i-1], window[i])
		avgGain = (avgGain*(period-1) + gain) / period
		avgLoss = (avgLoss*(period-1) + loss) / period
		out = append(out, rsi(avgGain, avgLoss))
	}

	return Oscillator{Previous: out[0], Latest: out[1]}, true
}

func change(prev, cur float64) (gain, loss float64) {
	d := cur - prev
	if d > 0 {
		return d, 0
	}
	return 0, -d
}

func rsi(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	if avgGain == 0 {
		return 0
	}
	rs := avgGain / avgLoss
	return keepDecimalFixed(100-100/(1+rs), 2)
}
