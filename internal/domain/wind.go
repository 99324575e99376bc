package domain

import "math"

// WindDirection reduces aligned 10 m wind component samples to a single mean
// direction in degrees, meteorological "from" convention: each grid cell is
// first averaged over time, the cell means are averaged over space, and the
// direction of the resulting vector is 180 + atan2(ū, v̄)·180/π.
//
// The result is intentionally not normalized into [0, 360); downstream
// consumers receive the raw value. ok is false when no cell has valid data
// for both components.
func WindDirection(u10, v10 *Field) (float64, bool) {
	uMeans := u10.TimeMeanPerCell()
	vMeans := v10.TimeMeanPerCell()
	if len(uMeans) != len(vMeans) {
		return 0, false
	}

	var uSum, vSum float64
	var n int
	for i := range uMeans {
		if math.IsNaN(uMeans[i]) || math.IsNaN(vMeans[i]) {
			continue
		}
		uSum += uMeans[i]
		vSum += vMeans[i]
		n++
	}
	if n == 0 {
		return 0, false
	}

	uBar, vBar := uSum/float64(n), vSum/float64(n)
	return 180 + math.Atan2(uBar, vBar)*180/math.Pi, true
}
