package domain

import "time"

// TimeRange is a UTC time interval. Both bounds are inclusive, matching the
// label-slice semantics of the upstream dataset.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// LatLon is a geographic point in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// LatLonBox is an inclusive latitude/longitude rectangle in degrees.
type LatLonBox struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

// Region selects the spatial subset of a field: either a nearest-neighbor
// point lookup or a rectangular range reduction. Exactly one of Point and
// Rect is set.
type Region struct {
	Point *LatLon
	Rect  *LatLonBox
}

// PointRegion builds a nearest-neighbor point region.
func PointRegion(lat, lon float64) Region {
	return Region{Point: &LatLon{Lat: lat, Lon: lon}}
}

// RectRegion builds a rectangular region. The bounds may be given in either
// order; they are normalized so min ≤ max.
func RectRegion(lat0, lat1, lon0, lon1 float64) Region {
	if lat0 > lat1 {
		lat0, lat1 = lat1, lat0
	}
	if lon0 > lon1 {
		lon0, lon1 = lon1, lon0
	}
	return Region{Rect: &LatLonBox{LatMin: lat0, LatMax: lat1, LonMin: lon0, LonMax: lon1}}
}
