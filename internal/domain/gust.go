package domain

import "math"

// GustNoData is the sentinel wind speed denoting a missing gust reading.
const GustNoData = 32767

// gustStep is one row of the gust severity table: speeds in [previous upper
// bound, Upper) map to Scale.
type gustStep struct {
	Upper float64 // exclusive upper bound, m/s
	Scale float64
}

// gustTable maps peak 10 m gust speed to the operational severity scale.
// Half-step granularity above 12 m/s; the domain ends at 61.3 m/s.
var gustTable = []gustStep{
	{5, 2},
	{8, 4},
	{10, 5},
	{12, 6},
	{14, 6.5},
	{16, 7},
	{18, 7.5},
	{20, 8},
	{22, 8.5},
	{26, 9},
	{27.5, 9.5},
	{28.5, 10},
	{30, 10.5},
	{31.5, 11},
	{33.5, 11.5},
	{35.5, 12},
	{37.5, 12.5},
	{39.5, 13},
	{41.5, 13.5},
	{43.9, 14},
	{46.2, 14.5},
	{48.7, 15},
	{51.0, 15.5},
	{53.6, 16},
	{56.1, 16.5},
	{58.7, 17},
	{61.3, 17.5},
}

// GustScale maps a peak gust speed in m/s to its severity scale. ok is false
// for the no-data sentinel and for speeds outside [0, 61.3); the result is
// never inherited from a previous call.
func GustScale(speed float64) (float64, bool) {
	if math.IsNaN(speed) || math.Abs(speed) == GustNoData {
		return 0, false
	}
	if speed < 0 {
		return 0, false
	}
	for _, step := range gustTable {
		if speed < step.Upper {
			return step.Scale, true
		}
	}
	return 0, false
}

// WindowGustScale reduces a gust sample to the severity scale of its peak
// value. ok is false when the sample is empty or the peak is undefined.
func WindowGustScale(i10fg *Field) (float64, bool) {
	peak, ok := i10fg.Max()
	if !ok {
		return 0, false
	}
	return GustScale(peak)
}
