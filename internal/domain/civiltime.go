// Package domain implements the forecast feature-extraction core: civil-time
// conversion, forecast-day windowing, the per-window statistical calculators,
// and the precipitation severity classifier.
package domain

import (
	"fmt"
	"time"
)

// Beijing is the civil time zone all forecast windows are defined in.
// Fixed UTC+8 offset, no daylight saving.
var Beijing = time.FixedZone("Asia/Shanghai", 8*60*60)

// LocalTimeLayout is the wire format for issue instants and the fsttime column.
const LocalTimeLayout = "2006-01-02T15:04:05"

// ToUTC interprets the wall-clock reading of local as Beijing civil time and
// returns the corresponding UTC instant.
func ToUTC(local time.Time) time.Time {
	return asBeijing(local).UTC()
}

// asBeijing reinterprets the wall-clock reading of t as Beijing civil time.
func asBeijing(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), Beijing)
}

// FromUTC converts a UTC instant to Beijing civil time.
func FromUTC(utc time.Time) time.Time {
	return utc.In(Beijing)
}

// ParseLocal parses an issue instant given in Beijing civil time. Both the
// compact ISO layout ("2006-01-02T15:04:05") and RFC 3339 are accepted; an
// RFC 3339 instant carrying an offset is converted to Beijing time.
// A string that matches neither returns ErrMalformedInput.
func ParseLocal(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(LocalTimeLayout, s, Beijing); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(Beijing), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedInput, s)
}
