package domain

import "math"

// CloudSample holds the aligned per-cell inputs of the cloud-code
// calculator: total and low cloud cover as fractions (0–1), precipitation as
// sampled, and 850/700 hPa relative humidity as fractions.
type CloudSample struct {
	TCC   []float64
	LCC   []float64
	TP    []float64
	RH850 []float64
	RH700 []float64
}

// CloudMeans applies the three humidity/precipitation corrections cell by
// cell and returns the spatial means of the corrected covers, in percent.
// Cells with missing cover are ignored in the means; ok is false when no
// valid cell remains.
//
// Corrections, in order:
//  1. dry mid-levels thin the total cover: tcc *= ((rh700+rh850)/200)^0.4
//  2. a dry 850/700 hPa layer thins the low cover: lcc *= (rh850/100)^0.3
//  3. low aligned precipitation halves the low cover.
func CloudMeans(s CloudSample) (meanTCC, meanLCC float64, ok bool) {
	n := len(s.TCC)
	tcc := make([]float64, n)
	lcc := make([]float64, n)

	for i := 0; i < n; i++ {
		t := s.TCC[i] * 100
		l := s.LCC[i] * 100
		rh8 := at(s.RH850, i) * 100
		rh7 := at(s.RH700, i) * 100

		if rh8+rh7 < 140 && rh8 < 80 && rh7 < 80 {
			t *= math.Pow((rh7+rh8)/200, 0.4)
		}
		if (rh8 < 40 && rh7 < 30) || rh7 < 10 {
			l *= math.Pow(rh8/100, 0.3)
		}
		if at(s.TP, i) < 0.3 {
			l /= 2
		}

		tcc[i] = t
		lcc[i] = l
	}

	meanTCC, okT := nanMean(tcc)
	meanLCC, okL := nanMean(lcc)
	return meanTCC, meanLCC, okT && okL
}

// at returns s[i], or NaN when the slice is too short. The humidity grids
// may carry fewer cells than the cover grids after alignment.
func at(s []float64, i int) float64 {
	if i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

// CloudCode maps corrected mean covers (percent) to the emitted code:
// 2 overcast, 1 partly cloudy, 0 clear.
func CloudCode(meanTCC, meanLCC float64) int {
	switch {
	case (meanTCC > 80 && meanLCC > 40) || meanTCC > 90 || meanLCC > 90:
		return 2
	case meanLCC > 15 || meanTCC > 40:
		return 1
	default:
		return 0
	}
}

// CloudCodeFor computes the cloud code for one window's sample. ok is false
// when no valid cell exists.
func CloudCodeFor(s CloudSample) (int, bool) {
	meanTCC, meanLCC, ok := CloudMeans(s)
	if !ok {
		return 0, false
	}
	return CloudCode(meanTCC, meanLCC), true
}
