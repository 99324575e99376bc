package domain

// dominance disambiguates category selection when competing precipitation
// types share a window.
type dominance int

const (
	// dominantNone applies when no dominance comparison is needed.
	dominantNone dominance = iota
	// dominantMix: sleet+rain cells cover at least as much as snow cells.
	dominantMix
	// dominantSnow: snow cells outnumber the sleet+rain cells.
	dominantSnow
	// dominantRain: rain cells cover at least as much as sleet cells.
	dominantRain
	// dominantSleet: sleet cells outnumber rain cells.
	dominantSleet
)

// winterKey enumerates the winter type combinations. Thunder plays no role
// in the winter table.
type winterKey struct {
	Snow     bool
	Sleet    bool
	Rain     bool
	Drizzle  bool
	Dominant dominance
}

// winterCategories is the exhaustive winter branch table. Category codes:
//
//	11 showery mix, mostly sleet/rain   15 showery mix, mostly snow
//	12 snow only
//	 5 showers, rain over sleet          9 showers, sleet over rain
//	 7 sleet showers                     2 rain showers
//	 4 steady rain over sleet            8 steady sleet over rain
//	 6 steady sleet                      1 steady rain
var winterCategories = map[winterKey]int{
	// Snow together with any of sleet/rain/drizzle.
	{Snow: true, Sleet: true, Dominant: dominantMix}:                             11,
	{Snow: true, Rain: true, Dominant: dominantMix}:                              11,
	{Snow: true, Drizzle: true, Dominant: dominantMix}:                           11,
	{Snow: true, Sleet: true, Rain: true, Dominant: dominantMix}:                 11,
	{Snow: true, Sleet: true, Drizzle: true, Dominant: dominantMix}:              11,
	{Snow: true, Rain: true, Drizzle: true, Dominant: dominantMix}:               11,
	{Snow: true, Sleet: true, Rain: true, Drizzle: true, Dominant: dominantMix}:  11,
	{Snow: true, Sleet: true, Dominant: dominantSnow}:                            15,
	{Snow: true, Rain: true, Dominant: dominantSnow}:                             15,
	{Snow: true, Drizzle: true, Dominant: dominantSnow}:                          15,
	{Snow: true, Sleet: true, Rain: true, Dominant: dominantSnow}:                15,
	{Snow: true, Sleet: true, Drizzle: true, Dominant: dominantSnow}:             15,
	{Snow: true, Rain: true, Drizzle: true, Dominant: dominantSnow}:              15,
	{Snow: true, Sleet: true, Rain: true, Drizzle: true, Dominant: dominantSnow}: 15,

	// Snow alone.
	{Snow: true}: 12,

	// No snow, with drizzle (showery).
	{Sleet: true, Rain: true, Drizzle: true, Dominant: dominantRain}:  5,
	{Sleet: true, Rain: true, Drizzle: true, Dominant: dominantSleet}: 9,
	{Sleet: true, Drizzle: true}:                                      7,
	{Rain: true, Drizzle: true}:                                       2,

	// No snow, no drizzle (steady).
	{Sleet: true, Rain: true, Dominant: dominantRain}:  4,
	{Sleet: true, Rain: true, Dominant: dominantSleet}: 8,
	{Sleet: true}: 6,
	{Rain: true}:  1,
}

// categoryOf selects the classifier category for the present-type
// combination. Summer resolves by priority thunder > drizzle > rain; winter
// resolves through winterCategories. Returns 0 when no category applies.
func categoryOf(season Season, f TypeFlags, st PrecipStats) int {
	if season == Summer {
		switch {
		case f.Thunder:
			return 3
		case f.Drizzle:
			return 2
		case f.Rain:
			return 1
		default:
			return 0
		}
	}

	key := winterKey{Snow: f.Snow, Sleet: f.Sleet, Rain: f.Rain, Drizzle: f.Drizzle}
	switch {
	case f.Snow && (f.Sleet || f.Rain || f.Drizzle):
		if st.Sleet+st.Rain >= st.Snow {
			key.Dominant = dominantMix
		} else {
			key.Dominant = dominantSnow
		}
	case !f.Snow && f.Sleet && f.Rain:
		if st.Rain >= st.Sleet {
			key.Dominant = dominantRain
		} else {
			key.Dominant = dominantSleet
		}
	}
	return winterCategories[key]
}

// peakField names the statistic whose peak splits a category's top coverage
// tier.
type peakField int

const (
	peakNone peakField = iota
	peakRain
	peakSnow
	peakSleet
)

// tierKey addresses one category's tier row.
type tierKey struct {
	Season   Season
	Category int
}

// tierSpec maps the coverage fraction (and, for the top tier, a peak
// intensity predicate) to the decimal part of the ifrain code.
type tierSpec struct {
	Peak   peakField // which peak splits the top tier; peakNone for no split
	PeakMM float64   // threshold for the split
	Top    float64   // coverage ≥ 0.8, peak predicate holds (or no split)
	TopAlt float64   // coverage ≥ 0.8, peak predicate fails
	Mid    float64   // coverage in [0.5, 0.8)
	Low    float64   // coverage in [0.2, 0.5)
	Lowest float64   // coverage < 0.2
}

// tierTable is the intensity tier row for every category.
var tierTable = map[tierKey]tierSpec{
	{Summer, 3}: {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Summer, 2}: {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Summer, 1}: {Peak: peakRain, PeakMM: 5, Top: 0.0, TopAlt: 0.1, Mid: 0.2, Low: 0.3, Lowest: 0.4},

	{Winter, 11}: {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Winter, 15}: {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Winter, 12}: {Peak: peakSnow, PeakMM: 0.5, Top: 0.0, TopAlt: 0.1, Mid: 0.2, Low: 0.4, Lowest: 0.4},
	{Winter, 5}:  {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Winter, 9}:  {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Winter, 7}:  {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Winter, 2}:  {Top: 0.0, TopAlt: 0.0, Mid: 0.1, Low: 0.2, Lowest: 0.2},
	{Winter, 4}:  {Peak: peakRain, PeakMM: 5, Top: 0.0, TopAlt: 0.1, Mid: 0.2, Low: 0.4, Lowest: 0.4},
	{Winter, 8}:  {Peak: peakRain, PeakMM: 5, Top: 0.0, TopAlt: 0.1, Mid: 0.2, Low: 0.4, Lowest: 0.4},
	{Winter, 6}:  {Peak: peakSleet, PeakMM: 3, Top: 0.0, TopAlt: 0.1, Mid: 0.2, Low: 0.4, Lowest: 0.4},
	{Winter, 1}:  {Peak: peakRain, PeakMM: 5, Top: 0.0, TopAlt: 0.1, Mid: 0.2, Low: 0.4, Lowest: 0.4},
}

// tier resolves the decimal part of the code for a coverage fraction.
func (sp tierSpec) tier(rainPercent float64, st PrecipStats) float64 {
	switch {
	case rainPercent >= 0.8:
		if sp.Peak == peakNone || sp.peakValue(st) >= sp.PeakMM {
			return sp.Top
		}
		return sp.TopAlt
	case rainPercent >= 0.5:
		return sp.Mid
	case rainPercent >= 0.2:
		return sp.Low
	default:
		return sp.Lowest
	}
}

// peakValue returns the statistic the top-tier split inspects.
func (sp tierSpec) peakValue(st PrecipStats) float64 {
	switch sp.Peak {
	case peakRain:
		return st.RainMax
	case peakSnow:
		return st.SnowMax
	case peakSleet:
		return st.SleetMax
	default:
		return 0
	}
}
