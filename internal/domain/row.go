package domain

import (
	"fmt"
	"strconv"
)

// ForecastRow is one window of the per-day forecast table. Pointer fields
// are nil when the source data for them was unavailable; the precipitation
// columns are always computed because an empty sample classifies as dry.
type ForecastRow struct {
	FstTime     string   `csv:"fsttime" json:"fsttime"`
	MaxTempC    *float64 `csv:"max_temp_c" json:"max_temp_c"`
	MinTempC    *float64 `csv:"min_temp_c" json:"min_temp_c"`
	RHMin       *float64 `csv:"rhmin" json:"rhmin"`
	RHMax       *float64 `csv:"rhmax" json:"rhmax"`
	WDir        *float64 `csv:"wdir" json:"wdir"`
	GustScale   *float64 `csv:"uvg" json:"uvg"`
	CloudCode   *int     `csv:"cloud" json:"cloud"`
	Ifrain      float64  `csv:"ifrain" json:"ifrain"`
	TPMax       float64  `csv:"tpmax" json:"tpmax"`
	RainPercent float64  `csv:"rain_percent" json:"rain_percent"`
}

// NewForecastRow starts a row for the given window with every optional
// column absent.
func NewForecastRow(w TimeWindow) ForecastRow {
	return ForecastRow{FstTime: w.Start.Format(LocalTimeLayout)}
}

// Window parses the row's fsttime back into the window it describes.
func (r ForecastRow) Window() (TimeWindow, error) {
	start, err := ParseLocal(r.FstTime)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("forecast row: %w", err)
	}
	return TimeWindow{Start: start, End: start.Add(windowSpan)}, nil
}

// String renders the row compactly for logs.
func (r ForecastRow) String() string {
	f := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	cloud := "-"
	if r.CloudCode != nil {
		cloud = strconv.Itoa(*r.CloudCode)
	}
	return fmt.Sprintf("%s tmax=%s tmin=%s rh=[%s,%s] wdir=%s uvg=%s cloud=%s ifrain=%.1f",
		r.FstTime, f(r.MaxTempC), f(r.MinTempC), f(r.RHMin), f(r.RHMax), f(r.WDir), f(r.GustScale), cloud, r.Ifrain)
}
