package domain

import (
	"math"
	"time"
)

// Season splits the year into the two classifier regimes.
type Season int

const (
	// Winter covers November through March.
	Winter Season = iota
	// Summer covers April through October.
	Summer
)

// SeasonOf returns the classifier season for a month.
func SeasonOf(m time.Month) Season {
	if m >= time.April && m <= time.October {
		return Summer
	}
	return Winter
}

// noiseFloor returns the seasonal total-precipitation threshold in mm below
// which a cell is treated as dry noise.
func noiseFloor(s Season) float64 {
	if s == Summer {
		return 0.2
	}
	return 0.15
}

// presenceThreshold is the coverage fraction at or above which a
// precipitation type counts as present in a window.
const presenceThreshold = 0.05

// PrecipSample holds one window's precipitation inputs in millimetres,
// aligned cell by cell on the snowfall grid: total precipitation, snowfall
// and convective precipitation.
type PrecipSample struct {
	TP []float64
	SF []float64
	CP []float64
}

// PrecipStats are the per-window coverage statistics the classifier branches
// on. Counts are cells; peaks are millimetres over the cells of that type.
type PrecipStats struct {
	Total   int
	Sleet   int
	Snow    int
	Rain    int
	Thunder int
	Drizzle int

	// PrecipCells counts cells classified as any of sleet, snow or rain.
	PrecipCells int

	TPMax    float64
	RainMax  float64
	SnowMax  float64
	SleetMax float64
}

// RainPercent is the fraction of cells with any precipitation type.
func (st PrecipStats) RainPercent() float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.PrecipCells) / float64(st.Total)
}

// TypeFlags marks which precipitation types are present, i.e. cover at least
// 5% of the window's cells.
type TypeFlags struct {
	Sleet   bool
	Snow    bool
	Rain    bool
	Thunder bool
	Drizzle bool
}

// Flags derives the presence flags from the coverage statistics.
func (st PrecipStats) Flags() TypeFlags {
	if st.Total == 0 {
		return TypeFlags{}
	}
	present := func(count int) bool {
		return float64(count)/float64(st.Total) >= presenceThreshold
	}
	return TypeFlags{
		Sleet:   present(st.Sleet),
		Snow:    present(st.Snow),
		Rain:    present(st.Rain),
		Thunder: present(st.Thunder),
		Drizzle: present(st.Drizzle),
	}
}

// AnalyzePrecip masks the sample against the seasonal noise floor and
// derives the per-type coverage masks:
//
//	sleet:   (tp−sf) > 0.1 and sf > 0.1
//	snow:    (tp−sf) < 0.1 and sf > 0.1
//	rain:    (tp−sf) > 0.1 and sf < 0.1
//	thunder: rain cell with cp ≥ 5
//	drizzle: rain cell with 2 < cp < 5
//
// A cell whose total precipitation is missing or below the floor fails every
// mask but still counts toward Total.
func AnalyzePrecip(s PrecipSample, m time.Month) PrecipStats {
	floor := noiseFloor(SeasonOf(m))

	st := PrecipStats{Total: len(s.TP)}
	rainVals := make([]float64, 0, len(s.TP))
	snowVals := make([]float64, 0, len(s.TP))
	sleetVals := make([]float64, 0, len(s.TP))
	tpVals := make([]float64, 0, len(s.TP))

	for i := range s.TP {
		tp := s.TP[i]
		if tp < floor || math.IsNaN(tp) {
			tp = math.NaN()
		}
		sf := at(s.SF, i)
		cp := at(s.CP, i)

		if !math.IsNaN(tp) {
			tpVals = append(tpVals, tp)
		}

		sleet := tp-sf > 0.1 && sf > 0.1
		snow := tp-sf < 0.1 && sf > 0.1
		rain := tp-sf > 0.1 && sf < 0.1

		if sleet {
			st.Sleet++
			sleetVals = append(sleetVals, tp)
		}
		if snow {
			st.Snow++
			snowVals = append(snowVals, sf)
		}
		if rain {
			st.Rain++
			rainVals = append(rainVals, tp)
			if cp >= 5 {
				st.Thunder++
			}
			if cp > 2 && cp < 5 {
				st.Drizzle++
			}
		}
		if sleet || snow || rain {
			st.PrecipCells++
		}
	}

	st.TPMax = nanMax(tpVals)
	st.RainMax = nanMax(rainVals)
	st.SnowMax = nanMax(snowVals)
	st.SleetMax = nanMax(sleetVals)
	return st
}

// Classification is the emitted precipitation result for one window.
type Classification struct {
	Ifrain      float64
	TPMax       float64
	RainPercent float64
}

// ClassifyPrecip converts one window's precipitation sample into the ifrain
// severity code. Category selection and intensity tiering are table lookups
// over the enumerated type combination; see categoryOf and tierTable.
func ClassifyPrecip(s PrecipSample, m time.Month) Classification {
	st := AnalyzePrecip(s, m)
	out := Classification{
		TPMax:       st.TPMax,
		RainPercent: st.RainPercent(),
	}
	if st.PrecipCells == 0 {
		return out
	}

	season := SeasonOf(m)
	category := categoryOf(season, st.Flags(), st)
	if category == 0 {
		return out
	}

	spec := tierTable[tierKey{Season: season, Category: category}]
	out.Ifrain = float64(category) + spec.tier(out.RainPercent, st)
	return out
}
