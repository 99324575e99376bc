package domain

// kelvinZeroC is the Kelvin reading of 0 °C.
const kelvinZeroC = 273.15

// TemperatureExtremes reduces a 2 m temperature sample (Kelvin) to its
// maximum and minimum in Celsius. ok is false when the sample holds no valid
// cell; callers emit a missing value rather than a row-aborting error.
func TemperatureExtremes(t2m *Field) (maxC, minC float64, ok bool) {
	hi, okHi := t2m.Max()
	lo, okLo := t2m.Min()
	if !okHi || !okLo {
		return 0, 0, false
	}
	return hi - kelvinZeroC, lo - kelvinZeroC, true
}
