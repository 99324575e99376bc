package domain

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Field is an immutable spatio-temporal sample of one physical variable over
// a window and region. Values is time-major ([time][lat][lon] flattened);
// missing cells are NaN.
type Field struct {
	Name   string
	Times  []time.Time
	Lats   []float64
	Lons   []float64
	Values []float64
}

// CellCount returns the total number of cells, valid or not.
func (f *Field) CellCount() int { return len(f.Values) }

// Empty reports whether the sample holds no cells at all.
func (f *Field) Empty() bool { return len(f.Values) == 0 }

// At returns the value at time index t, latitude index i, longitude index j.
func (f *Field) At(t, i, j int) float64 {
	return f.Values[(t*len(f.Lats)+i)*len(f.Lons)+j]
}

// valid returns the non-NaN values of s.
func valid(s []float64) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Max returns the largest valid value. ok is false when no cell is valid.
func (f *Field) Max() (float64, bool) {
	vs := valid(f.Values)
	if len(vs) == 0 {
		return 0, false
	}
	return floats.Max(vs), true
}

// Min returns the smallest valid value. ok is false when no cell is valid.
func (f *Field) Min() (float64, bool) {
	vs := valid(f.Values)
	if len(vs) == 0 {
		return 0, false
	}
	return floats.Min(vs), true
}

// Scaled returns a copy of the field with every value multiplied by k.
// Used for metre→millimetre conversion of the precipitation accumulations.
func (f *Field) Scaled(k float64) *Field {
	out := &Field{
		Name:   f.Name,
		Times:  f.Times,
		Lats:   f.Lats,
		Lons:   f.Lons,
		Values: make([]float64, len(f.Values)),
	}
	for i, v := range f.Values {
		out.Values[i] = v * k
	}
	return out
}

// TimeMeanPerCell reduces the time axis, returning one mean per grid cell
// ([lat][lon] flattened). Missing instants are ignored per cell; a cell with
// no valid instant is NaN.
func (f *Field) TimeMeanPerCell() []float64 {
	nCells := len(f.Lats) * len(f.Lons)
	means := make([]float64, nCells)
	for c := 0; c < nCells; c++ {
		series := make([]float64, 0, len(f.Times))
		for t := 0; t < len(f.Times); t++ {
			if v := f.Values[t*nCells+c]; !math.IsNaN(v) {
				series = append(series, v)
			}
		}
		if len(series) == 0 {
			means[c] = math.NaN()
		} else {
			means[c] = stat.Mean(series, nil)
		}
	}
	return means
}

// nanMean averages the valid values of s. ok is false when none are valid.
func nanMean(s []float64) (float64, bool) {
	vs := valid(s)
	if len(vs) == 0 {
		return 0, false
	}
	return stat.Mean(vs, nil), true
}

// nanMax returns the largest valid value of s, or 0 when none are valid.
func nanMax(s []float64) float64 {
	vs := valid(s)
	if len(vs) == 0 {
		return 0
	}
	return floats.Max(vs)
}
