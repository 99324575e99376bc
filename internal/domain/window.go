package domain

import "time"

// windowSpan is the nominal width of one forecast sub-period.
const windowSpan = 3 * time.Hour

// cutoffHour is the Beijing wall-clock hour on the day after the issue
// instant at which the forecast day ends.
const cutoffHour = 20

// IssueHours are the Beijing wall-clock hours at which forecasts are issued.
var IssueHours = []int{5, 11, 17, 20}

// TimeWindow is one sub-period of a forecast day, bounded in Beijing civil
// time. Start is inclusive, End exclusive.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// StartUTC returns the window start as a UTC instant.
func (w TimeWindow) StartUTC() time.Time { return ToUTC(w.Start) }

// EndUTC returns the window end as a UTC instant.
func (w TimeWindow) EndUTC() time.Time { return ToUTC(w.End) }

// UTCRange returns the window bounds as a UTC time range.
func (w TimeWindow) UTCRange() TimeRange {
	return TimeRange{Start: w.StartUTC(), End: w.EndUTC()}
}

// DailyCutoff returns 20:00 Beijing time on the calendar day after issue.
func DailyCutoff(issue time.Time) time.Time {
	next := asBeijing(issue).AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), cutoffHour, 0, 0, 0, Beijing)
}

// Windows partitions [issue, DailyCutoff(issue)) into contiguous,
// non-overlapping sub-periods of at most three hours each. The final window
// is shortened so the union of all windows covers the span exactly. The
// wall-clock reading of issue is interpreted as Beijing civil time.
func Windows(issue time.Time) []TimeWindow {
	issue = asBeijing(issue)
	cutoff := DailyCutoff(issue)

	var windows []TimeWindow
	for t := issue; t.Before(cutoff); {
		end := t.Add(windowSpan)
		if end.After(cutoff) {
			end = cutoff
		}
		windows = append(windows, TimeWindow{Start: t, End: end})
		t = end
	}
	return windows
}

// WindowsFrom parses an issue instant and generates its forecast windows.
// Returns ErrMalformedInput for an unparseable instant.
func WindowsFrom(issue string) ([]TimeWindow, error) {
	t, err := ParseLocal(issue)
	if err != nil {
		return nil, err
	}
	return Windows(t), nil
}
