package domain

import (
	"math"
	"testing"
	"time"
)

func sampleField(name string, values ...float64) *Field {
	return &Field{
		Name:   name,
		Times:  []time.Time{time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		Lats:   []float64{31},
		Lons:   make([]float64, len(values)),
		Values: values,
	}
}

// TestTemperatureExtremes tests the Kelvin→Celsius reduction and the
// all-missing case.
func TestTemperatureExtremes(t *testing.T) {
	f := sampleField("t2m", 300.15, 295.15, math.NaN(), 303.15)
	maxC, minC, ok := TemperatureExtremes(f)
	if !ok {
		t.Fatalf("TemperatureExtremes: unexpected not-ok")
	}
	if math.Abs(maxC-30) > 1e-9 || math.Abs(minC-22) > 1e-9 {
		t.Errorf("TemperatureExtremes: expected 30/22, got %.2f/%.2f", maxC, minC)
	}

	if _, _, ok := TemperatureExtremes(sampleField("t2m", math.NaN())); ok {
		t.Errorf("TemperatureExtremes(all missing): expected not-ok")
	}
}

// TestRelativeHumidity tests the Magnus approximation at known points.
func TestRelativeHumidity(t *testing.T) {
	// Saturation: dewpoint equals temperature.
	if rh := RelativeHumidity(20, 20); math.Abs(rh-100) > 1e-9 {
		t.Errorf("RelativeHumidity(20,20): expected 100, got %.4f", rh)
	}
	// 25 °C with a 15 °C dewpoint is roughly 54% by Magnus.
	rh := RelativeHumidity(25, 15)
	if rh < 52 || rh > 56 {
		t.Errorf("RelativeHumidity(25,15): expected ~54, got %.2f", rh)
	}
	// The result is clipped: a dewpoint above the temperature cannot
	// exceed 100.
	if rh := RelativeHumidity(10, 15); rh > 100 {
		t.Errorf("RelativeHumidity(10,15): expected clip at 100, got %.2f", rh)
	}
}

// TestHumidityRange tests the min/max reduction over aligned instants with a
// missing pair.
func TestHumidityRange(t *testing.T) {
	t2m := sampleField("t2m", 298.15, 293.15, 300.15)
	d2m := sampleField("d2m", 288.15, 291.15, math.NaN())

	rhMin, rhMax, ok := HumidityRange(t2m, d2m)
	if !ok {
		t.Fatalf("HumidityRange: unexpected not-ok")
	}
	if rhMin >= rhMax {
		t.Errorf("HumidityRange: min %.2f not below max %.2f", rhMin, rhMax)
	}
	// The second instant is nearly saturated (20 °C over an 18 °C
	// dewpoint).
	if rhMax < 85 {
		t.Errorf("HumidityRange: expected max above 85, got %.2f", rhMax)
	}

	if _, _, ok := HumidityRange(sampleField("t2m", math.NaN()), sampleField("d2m", 280)); ok {
		t.Errorf("HumidityRange(no valid pair): expected not-ok")
	}
}

// TestWindDirection tests the cardinal directions of the meteorological
// "from" convention.
func TestWindDirection(t *testing.T) {
	cases := []struct {
		u, v float64
		deg  float64
	}{
		{0, -1, 360},  // northerly: atan2 yields π, and 360 is not wrapped
		{-1, 0, 90},   // easterly
		{0, 1, 180},   // southerly
		{1, 0, 270},   // westerly
		{-1, -1, 45},  // north-easterly
	}
	for _, c := range cases {
		got, ok := WindDirection(sampleField("u10", c.u), sampleField("v10", c.v))
		if !ok {
			t.Fatalf("WindDirection(%v,%v): unexpected not-ok", c.u, c.v)
		}
		if math.Abs(got-c.deg) > 1e-9 {
			t.Errorf("WindDirection(%v,%v): expected %.0f, got %.4f", c.u, c.v, c.deg, got)
		}
	}
}

// TestWindDirection_SpatialMean tests that components are averaged before
// the direction is taken, not per cell.
func TestWindDirection_SpatialMean(t *testing.T) {
	// Two cells with opposing u cancel; the mean vector blows from the
	// north.
	u := sampleField("u10", 3, -3)
	v := sampleField("v10", -2, -2)
	got, ok := WindDirection(u, v)
	if !ok || math.Abs(got-360) > 1e-9 {
		t.Errorf("WindDirection(mean): expected 360, got %.4f %v", got, ok)
	}
}

// TestFieldReductions tests Max/Min/TimeMeanPerCell over a two-instant grid
// with a missing cell.
func TestFieldReductions(t *testing.T) {
	f := &Field{
		Name:  "tp",
		Times: []time.Time{time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 1, 1, 0, 0, 0, time.UTC)},
		Lats:  []float64{31},
		Lons:  []float64{121, 121.25},
		Values: []float64{
			1, math.NaN(),
			3, 4,
		},
	}
	if got, ok := f.Max(); !ok || got != 4 {
		t.Errorf("Max: expected 4 ok, got %v %v", got, ok)
	}
	if got, ok := f.Min(); !ok || got != 1 {
		t.Errorf("Min: expected 1 ok, got %v %v", got, ok)
	}

	means := f.TimeMeanPerCell()
	if len(means) != 2 {
		t.Fatalf("TimeMeanPerCell: expected 2 cells, got %d", len(means))
	}
	if means[0] != 2 || means[1] != 4 {
		t.Errorf("TimeMeanPerCell: expected [2 4], got %v", means)
	}

	scaled := f.Scaled(1000)
	if scaled.Values[0] != 1000 {
		t.Errorf("Scaled: expected 1000, got %v", scaled.Values[0])
	}
	if f.Values[0] != 1 {
		t.Errorf("Scaled must not mutate the receiver")
	}
}
