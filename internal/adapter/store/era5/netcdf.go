// Package era5 provides access to ERA5 reanalysis NetCDF files.
package era5

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
)

// Candidate axis variable names. ERA5 downloads differ by CDS API era and
// post-processing tool.
var (
	timeNames  = []string{"valid_time", "time"}
	latNames   = []string{"latitude", "lat"}
	lonNames   = []string{"longitude", "lon"}
	levelNames = []string{"isobaricInhPa", "pressure_level", "level", "plev"}
)

// era5Epoch is the reference instant of the classic "hours since" time axis.
var era5Epoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Store reads ERA5 surface and pressure-level NetCDF files. Decoded
// variables are cached in memory behind a read/write lock; the files are
// opened on first use.
type Store struct {
	surfacePath string
	levelPath   string

	mu    sync.RWMutex
	files map[string]*gridFile // Keyed by path.
}

// gridFile is one decoded NetCDF file: its axes plus every variable read so
// far, fill values replaced by NaN and packing applied.
type gridFile struct {
	times  []time.Time
	lats   []float64
	lons   []float64
	levels []float64 // Empty when the file has no level axis.

	mu   sync.RWMutex
	vars map[string][]float64
}

// NewStore creates an ERA5 store over a surface file and a pressure-level
// file. Either path may be empty when that half of the data is not needed.
func NewStore(surfacePath, levelPath string) *Store {
	return &Store{
		surfacePath: surfacePath,
		levelPath:   levelPath,
		files:       make(map[string]*gridFile),
	}
}

// Sample reads a surface variable over the time range and region.
func (s *Store) Sample(name string, tr domain.TimeRange, region domain.Region) (*domain.Field, error) {
	if s.surfacePath == "" {
		return nil, fmt.Errorf("era5: no surface file configured: %w", domain.ErrMissingField)
	}
	return s.sample(s.surfacePath, name, -1, tr, region)
}

// SampleLevel reads a pressure-level variable at the given level in hPa.
func (s *Store) SampleLevel(name string, levelHPa float64, tr domain.TimeRange, region domain.Region) (*domain.Field, error) {
	if s.levelPath == "" {
		return nil, fmt.Errorf("era5: no pressure-level file configured: %w", domain.ErrMissingField)
	}
	return s.sample(s.levelPath, name, levelHPa, tr, region)
}

// sample subsets one variable. level is -1 for surface variables.
func (s *Store) sample(path, name string, level float64, tr domain.TimeRange, region domain.Region) (*domain.Field, error) {
	gf, err := s.file(path)
	if err != nil {
		return nil, err
	}

	values, err := gf.variable(path, name)
	if err != nil {
		return nil, err
	}

	levelIdx := -1
	if level >= 0 {
		levelIdx = indexOfLevel(gf.levels, level)
		if levelIdx < 0 {
			return nil, fmt.Errorf("era5: %s: level %.0f hPa: %w", name, level, domain.ErrNoLevelAxis)
		}
	}

	timeIdx := selectTimes(gf.times, tr)
	latIdx, lonIdx := selectCells(gf.lats, gf.lons, region)
	if len(latIdx) == 0 || len(lonIdx) == 0 {
		return nil, fmt.Errorf("era5: %s: region outside the file's grid: %w", name, domain.ErrMissingField)
	}

	f := &domain.Field{
		Name:   name,
		Times:  make([]time.Time, 0, len(timeIdx)),
		Lats:   make([]float64, 0, len(latIdx)),
		Lons:   make([]float64, 0, len(lonIdx)),
		Values: make([]float64, 0, len(timeIdx)*len(latIdx)*len(lonIdx)),
	}
	for _, i := range latIdx {
		f.Lats = append(f.Lats, gf.lats[i])
	}
	for _, j := range lonIdx {
		f.Lons = append(f.Lons, gf.lons[j])
	}

	nLat, nLon := len(gf.lats), len(gf.lons)
	nLevel := len(gf.levels)
	for _, t := range timeIdx {
		f.Times = append(f.Times, gf.times[t])
		for _, i := range latIdx {
			for _, j := range lonIdx {
				// Layout is [time][level][lat][lon], level absent for
				// surface files.
				idx := t
				if levelIdx >= 0 {
					idx = idx*nLevel + levelIdx
				}
				idx = (idx*nLat+i)*nLon + j
				if idx >= len(values) {
					return nil, fmt.Errorf("era5: %s: value index %d beyond %d cells: %w",
						name, idx, len(values), domain.ErrMalformedInput)
				}
				f.Values = append(f.Values, values[idx])
			}
		}
	}
	return f, nil
}

// file returns the decoded axes for path, opening it on first use.
func (s *Store) file(path string) (*gridFile, error) {
	s.mu.RLock()
	gf, ok := s.files[path]
	s.mu.RUnlock()
	if ok {
		return gf, nil
	}

	gf, err := openGridFile(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if prior, ok := s.files[path]; ok {
		gf = prior
	} else {
		s.files[path] = gf
	}
	s.mu.Unlock()
	return gf, nil
}

// variable returns the decoded values of name, reading it on first use.
func (gf *gridFile) variable(path, name string) ([]float64, error) {
	gf.mu.RLock()
	values, ok := gf.vars[name]
	gf.mu.RUnlock()
	if ok {
		return values, nil
	}

	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("era5: failed to open %s: %w", path, err)
	}
	defer func() { _ = nc.Close() }()

	v, err := nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("era5: variable %q not in %s: %w", name, path, domain.ErrMissingField)
	}
	values, err = readPackedVar(v)
	if err != nil {
		return nil, fmt.Errorf("era5: failed to read %q from %s: %w", name, path, err)
	}

	gf.mu.Lock()
	if prior, ok := gf.vars[name]; ok {
		values = prior
	} else {
		gf.vars[name] = values
	}
	gf.mu.Unlock()
	return values, nil
}

// openGridFile decodes the coordinate axes of a NetCDF file.
func openGridFile(path string) (*gridFile, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("era5: failed to open %s: %w", path, err)
	}
	defer func() { _ = nc.Close() }()

	rawTimes, err := readAxis(nc, timeNames)
	if err != nil {
		return nil, fmt.Errorf("era5: %s: time axis: %w", path, err)
	}
	lats, err := readAxis(nc, latNames)
	if err != nil {
		return nil, fmt.Errorf("era5: %s: latitude axis: %w", path, err)
	}
	lons, err := readAxis(nc, lonNames)
	if err != nil {
		return nil, fmt.Errorf("era5: %s: longitude axis: %w", path, err)
	}
	// The level axis is optional; surface files do not carry one.
	levels, _ := readAxis(nc, levelNames)

	gf := &gridFile{
		times:  decodeTimes(rawTimes),
		lats:   lats,
		lons:   lons,
		levels: levels,
		vars:   make(map[string][]float64),
	}
	return gf, nil
}

// readAxis reads the first present candidate as a 1D float64 array.
func readAxis(nc netcdf.Dataset, candidates []string) ([]float64, error) {
	for _, name := range candidates {
		v, err := nc.Var(name)
		if err != nil {
			continue
		}
		data, err := readPackedVar(v)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	return nil, fmt.Errorf("axis variable not found (tried %v): %w", candidates, domain.ErrMalformedInput)
}

// decodeTimes converts a raw time axis to UTC instants. New-style CDS files
// store epoch seconds; classic files store hours since 1900-01-01. Epoch
// seconds for any modern date exceed 10^8, hour counts never do.
func decodeTimes(raw []float64) []time.Time {
	out := make([]time.Time, len(raw))
	for i, v := range raw {
		if v > 1e8 {
			out[i] = time.Unix(int64(v), 0).UTC()
		} else {
			out[i] = era5Epoch.Add(time.Duration(v * float64(time.Hour)))
		}
	}
	return out
}

// selectTimes returns the indices of instants inside the inclusive range,
// in axis order. An empty selection is valid; the caller decides whether an
// empty sample is an error.
func selectTimes(times []time.Time, tr domain.TimeRange) []int {
	idx := make([]int, 0, len(times))
	for i, t := range times {
		if tr.Contains(t) {
			idx = append(idx, i)
		}
	}
	return idx
}

// selectCells resolves a region to latitude and longitude index sets. A
// point region picks the nearest cell on each axis; a rectangle picks every
// cell inside its inclusive bounds. ERA5 latitude axes run north to south,
// so bounds are checked against min/max rather than order.
func selectCells(lats, lons []float64, region domain.Region) (latIdx, lonIdx []int) {
	if region.Point != nil {
		return []int{nearest(lats, region.Point.Lat)}, []int{nearest(lons, region.Point.Lon)}
	}

	r := region.Rect
	for i, v := range lats {
		if v >= r.LatMin && v <= r.LatMax {
			latIdx = append(latIdx, i)
		}
	}
	for j, v := range lons {
		if v >= r.LonMin && v <= r.LonMax {
			lonIdx = append(lonIdx, j)
		}
	}
	return latIdx, lonIdx
}

// nearest returns the index of the axis value closest to target.
func nearest(axis []float64, target float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, v := range axis {
		if d := math.Abs(v - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// indexOfLevel returns the index of the pressure level closest to target,
// or -1 when the axis is absent or no level is within half a hPa.
func indexOfLevel(levels []float64, target float64) int {
	if len(levels) == 0 {
		return -1
	}
	i := nearest(levels, target)
	if math.Abs(levels[i]-target) > 0.5 {
		return -1
	}
	return i
}

// readPackedVar reads a variable of any rank as float64, replacing the fill
// value with NaN and applying scale_factor/add_offset packing. The fill
// comparison happens on the raw stored value, before unpacking.
func readPackedVar(v netcdf.Var) ([]float64, error) {
	length, err := varLen(v)
	if err != nil {
		return nil, err
	}

	data, err := readRaw(v, length)
	if err != nil {
		return nil, err
	}

	fill, hasFill := attrFloat(v, "_FillValue", "missing_value")
	scale, hasScale := attrFloat(v, "scale_factor")
	offset, hasOffset := attrFloat(v, "add_offset")
	if !hasScale {
		scale = 1
	}
	if !hasOffset {
		offset = 0
	}

	for i, raw := range data {
		if hasFill && raw == fill {
			data[i] = math.NaN()
			continue
		}
		data[i] = raw*scale + offset
	}
	return data, nil
}

// varLen returns the total number of elements across all dimensions.
func varLen(v netcdf.Var) (uint64, error) {
	dims, err := v.Dims()
	if err != nil {
		return 0, fmt.Errorf("failed to get dimensions: %w", err)
	}
	total := uint64(1)
	for _, d := range dims {
		n, err := d.Len()
		if err != nil {
			return 0, err
		}
		total *= n
	}
	return total, nil
}

// readRaw reads the variable's values as float64 without unpacking.
func readRaw(v netcdf.Var, length uint64) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, length)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, length)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT:
		tmp := make([]int32, length)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.SHORT:
		tmp := make([]int16, length)
		if err := v.ReadInt16s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT64:
		tmp := make([]int64, length)
		if err := v.ReadInt64s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, length)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}

// attrFloat returns the first present attribute as float64.
func attrFloat(v netcdf.Var, names ...string) (float64, bool) {
	for _, name := range names {
		a := v.Attr(name)
		if a == (netcdf.Attr{}) {
			continue
		}
		if n, err := a.Len(); err != nil || n == 0 {
			continue
		}
		buf64 := make([]float64, 1)
		if err := a.ReadFloat64s(buf64); err == nil {
			return buf64[0], true
		}
		buf32 := make([]float32, 1)
		if err := a.ReadFloat32s(buf32); err == nil {
			return float64(buf32[0]), true
		}
		bufi := make([]int32, 1)
		if err := a.ReadInt32s(bufi); err == nil {
			return float64(bufi[0]), true
		}
	}
	return 0, false
}

// Levels reports the pressure levels available in the level file, for
// diagnostics. The slice is sorted ascending.
func (s *Store) Levels() ([]float64, error) {
	if s.levelPath == "" {
		return nil, nil
	}
	gf, err := s.file(s.levelPath)
	if err != nil {
		return nil, err
	}
	out := append([]float64(nil), gf.levels...)
	sort.Float64s(out)
	return out, nil
}
