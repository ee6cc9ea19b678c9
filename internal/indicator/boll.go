package indicator

import "math"

// ComputeBands — полосы Боллинджера по 20 значениям: SMA ± k·σ (σ по генеральной совокупности).
func ComputeBands(window []float64, stdDevFactor float64) (Bands, bool) {
	if len(window) != BandPeriod {
		return Bands{}, false
	}

	n := float64(len(window))
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	mean := sum / n

	variance := 0.0
	for _, v := range window {
		variance += (v - mean) * (v - mean)
	}
	variance /= n
	sd := math.Sqrt(variance)

	return Bands{
		Lower:  mean - stdDevFactor*sd,
		Middle: mean,
		Upper:  mean + stdDevFactor*sd,
	}, true
}
