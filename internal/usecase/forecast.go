// Package usecase orchestrates the per-day forecast table build.
package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/adapter/store"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/observability"
)

// accumulationScale converts the ERA5 precipitation accumulations from
// metres to millimetres.
const accumulationScale = 1000

// Builder reduces sampled reanalysis fields to one forecast table per issue
// instant.
type Builder struct {
	sampler store.FieldSampler
	logger  *slog.Logger
	metrics *observability.Metrics

	region  domain.Region
	rhPoint domain.Region
}

// NewBuilder creates a forecast table builder. region is the rectangle the
// gridded calculators reduce; rhPoint is the single observation point of the
// humidity calculator.
func NewBuilder(sampler store.FieldSampler, logger *slog.Logger, metrics *observability.Metrics, region, rhPoint domain.Region) *Builder {
	return &Builder{
		sampler: sampler,
		logger:  logger,
		metrics: metrics,
		region:  region,
		rhPoint: rhPoint,
	}
}

// BuildDay builds the forecast table for one issue instant, given in Beijing
// civil time. Windows whose surface fields are absent are skipped and the
// build continues; a malformed issue instant fails the whole build.
func (b *Builder) BuildDay(issue time.Time) ([]domain.ForecastRow, error) {
	started := time.Now()
	windows := domain.Windows(issue)
	if len(windows) == 0 {
		return nil, fmt.Errorf("forecast: no windows for issue %v: %w", issue, domain.ErrMalformedInput)
	}

	// Relative humidity is a day-level product: one range over the whole
	// span at a single point, repeated on every row. A failure here
	// degrades the columns, never the day.
	rhMin, rhMax, haveRH := b.humidityRange(windows)

	rows := make([]domain.ForecastRow, 0, len(windows))
	for _, w := range windows {
		row, err := b.buildWindow(w)
		if err != nil {
			if errors.Is(err, domain.ErrMissingField) {
				b.logger.Warn("skipping window",
					"window", w.Start.Format(domain.LocalTimeLayout),
					"error", err)
				b.metrics.WindowsSkipped.WithLabelValues("missing_field").Inc()
				continue
			}
			return nil, err
		}
		if haveRH {
			rhMinV, rhMaxV := rhMin, rhMax
			row.RHMin, row.RHMax = &rhMinV, &rhMaxV
		}
		rows = append(rows, row)
		b.metrics.WindowsProcessed.Inc()
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].FstTime < rows[j].FstTime })

	b.metrics.DaysProcessed.Inc()
	b.metrics.BuildDuration.Observe(time.Since(started).Seconds())
	b.logger.Info("forecast day built",
		"issue", issue.Format(domain.LocalTimeLayout),
		"windows", len(windows),
		"rows", len(rows),
		"duration", time.Since(started))
	return rows, nil
}

// BuildDayFrom parses an issue instant and builds its table.
func (b *Builder) BuildDayFrom(issue string) ([]domain.ForecastRow, error) {
	t, err := domain.ParseLocal(issue)
	if err != nil {
		return nil, err
	}
	return b.BuildDay(t)
}

// buildWindow reduces one window to a table row. An ErrMissingField from any
// surface sample aborts the row; an absent pressure-level axis only blanks
// the cloud column.
func (b *Builder) buildWindow(w domain.TimeWindow) (domain.ForecastRow, error) {
	row := domain.NewForecastRow(w)
	tr := w.UTCRange()

	t2m, err := b.sampler.Sample("t2m", tr, b.region)
	if err != nil {
		return row, err
	}
	if maxC, minC, ok := domain.TemperatureExtremes(t2m); ok {
		row.MaxTempC, row.MinTempC = &maxC, &minC
	}

	u10, err := b.sampler.Sample("u10", tr, b.region)
	if err != nil {
		return row, err
	}
	v10, err := b.sampler.Sample("v10", tr, b.region)
	if err != nil {
		return row, err
	}
	if wdir, ok := domain.WindDirection(u10, v10); ok {
		row.WDir = &wdir
	}

	i10fg, err := b.sampler.Sample("i10fg", tr, b.region)
	if err != nil {
		return row, err
	}
	if scale, ok := domain.WindowGustScale(i10fg); ok {
		row.GustScale = &scale
	}

	tp, err := b.sampler.Sample("tp", tr, b.region)
	if err != nil {
		return row, err
	}
	tpMM := tp.Scaled(accumulationScale)

	sf, err := b.sampler.Sample("sf", tr, b.region)
	if err != nil {
		return row, err
	}
	cp, err := b.sampler.Sample("cp", tr, b.region)
	if err != nil {
		return row, err
	}

	// The masks and coverage counts run over every sampled instant and
	// cell, not over time means.
	precip := domain.PrecipSample{
		TP: tpMM.Values,
		SF: sf.Scaled(accumulationScale).Values,
		CP: cp.Scaled(accumulationScale).Values,
	}
	cls := domain.ClassifyPrecip(precip, w.Start.Month())
	row.Ifrain = cls.Ifrain
	row.TPMax = cls.TPMax
	row.RainPercent = cls.RainPercent

	if code, ok, err := b.cloudCode(tr, tp); err != nil {
		return row, err
	} else if ok {
		row.CloudCode = &code
	}

	return row, nil
}

// cloudCode computes the window's cloud code. A dataset without an isobaric
// axis yields ok=false rather than an error. The precipitation correction
// compares against tp in the dataset's native metres.
func (b *Builder) cloudCode(tr domain.TimeRange, tp *domain.Field) (int, bool, error) {
	tcc, err := b.sampler.Sample("tcc", tr, b.region)
	if err != nil {
		return 0, false, err
	}
	lcc, err := b.sampler.Sample("lcc", tr, b.region)
	if err != nil {
		return 0, false, err
	}

	rh850, err := b.sampler.SampleLevel("r", 850, tr, b.region)
	if err != nil {
		if errors.Is(err, domain.ErrNoLevelAxis) {
			b.logger.Warn("cloud code unavailable", "error", err)
			return 0, false, nil
		}
		return 0, false, err
	}
	rh700, err := b.sampler.SampleLevel("r", 700, tr, b.region)
	if err != nil {
		if errors.Is(err, domain.ErrNoLevelAxis) {
			b.logger.Warn("cloud code unavailable", "error", err)
			return 0, false, nil
		}
		return 0, false, err
	}

	// Covers and humidities arrive as fractions; the corrections run
	// elementwise across every instant and cell before the means.
	s := domain.CloudSample{
		TCC:   tcc.Values,
		LCC:   lcc.Values,
		TP:    tp.Values,
		RH850: rh850.Values,
		RH700: rh700.Values,
	}
	code, ok := domain.CloudCodeFor(s)
	return code, ok, nil
}

// humidityRange computes the day-level relative humidity range at the
// observation point.
func (b *Builder) humidityRange(windows []domain.TimeWindow) (rhMin, rhMax float64, ok bool) {
	tr := domain.TimeRange{
		Start: windows[0].StartUTC(),
		End:   windows[len(windows)-1].EndUTC(),
	}

	t2m, err := b.sampler.Sample("t2m", tr, b.rhPoint)
	if err != nil {
		b.logger.Warn("humidity range unavailable", "error", err)
		return 0, 0, false
	}
	d2m, err := b.sampler.Sample("d2m", tr, b.rhPoint)
	if err != nil {
		b.logger.Warn("humidity range unavailable", "error", err)
		return 0, 0, false
	}

	rhMin, rhMax, ok = domain.HumidityRange(t2m, d2m)
	if !ok {
		b.logger.Warn("humidity range unavailable", "error", "no instant with both temperature and dewpoint")
	}
	return rhMin, rhMax, ok
}
