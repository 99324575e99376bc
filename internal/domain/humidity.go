package domain

import "math"

// August–Roche–Magnus coefficients for saturation vapour pressure over water.
const (
	magnusA = 17.625
	magnusB = 243.04
)

// RelativeHumidity computes relative humidity in percent from temperature
// and dewpoint in Celsius using the August–Roche–Magnus approximation,
// clipped to [0, 100].
func RelativeHumidity(tC, tdC float64) float64 {
	rh := 100 * math.Exp(magnusA*tdC/(magnusB+tdC)-magnusA*tC/(magnusB+tC))
	return math.Min(100, math.Max(0, rh))
}

// HumidityRange reduces aligned 2 m temperature and dewpoint samples
// (Kelvin) to the minimum and maximum relative humidity over all sampled
// instants. Computed once per forecast day at a single point, not per
// window. ok is false when no instant has both values.
func HumidityRange(t2m, d2m *Field) (rhMin, rhMax float64, ok bool) {
	n := len(t2m.Values)
	if len(d2m.Values) < n {
		n = len(d2m.Values)
	}

	rhMin, rhMax = math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		t, td := t2m.Values[i], d2m.Values[i]
		if math.IsNaN(t) || math.IsNaN(td) {
			continue
		}
		rh := RelativeHumidity(t-kelvinZeroC, td-kelvinZeroC)
		rhMin = math.Min(rhMin, rh)
		rhMax = math.Max(rhMax, rh)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return rhMin, rhMax, true
}
