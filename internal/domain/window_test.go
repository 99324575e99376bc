package domain

import (
	"errors"
	"testing"
	"time"
)

// TestToUTC_ReinterpretsWallClock tests that a naive timestamp is treated as
// Beijing local time regardless of the zone it was parsed in.
func TestToUTC_ReinterpretsWallClock(t *testing.T) {
	// 2024-07-01 08:00 Beijing is 2024-07-01 00:00 UTC.
	local := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	got := ToUTC(local)
	want := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ToUTC: expected %v, got %v", want, got)
	}

	// Round trip through FromUTC restores the wall clock.
	back := FromUTC(got)
	if back.Hour() != 8 || back.Day() != 1 {
		t.Errorf("FromUTC round trip: expected 08:00 on day 1, got %v", back)
	}
}

// TestParseLocal_Formats tests the accepted timestamp formats and the
// malformed-input error.
func TestParseLocal_Formats(t *testing.T) {
	got, err := ParseLocal("2024-01-15T05:00:00")
	if err != nil {
		t.Fatalf("ParseLocal: unexpected error: %v", err)
	}
	if got.Hour() != 5 || got.Month() != time.January {
		t.Errorf("ParseLocal: expected 05:00 January, got %v", got)
	}

	if _, err := ParseLocal("2024-01-15T05:00:00+08:00"); err != nil {
		t.Errorf("ParseLocal RFC3339: unexpected error: %v", err)
	}

	_, err = ParseLocal("15/01/2024 5am")
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("ParseLocal garbage: expected ErrMalformedInput, got %v", err)
	}
}

// TestWindows_MorningIssue tests the window sequence for an 05:00 issue: ten
// three-hour windows up to 20:00 on the following day.
func TestWindows_MorningIssue(t *testing.T) {
	issue := time.Date(2024, 7, 1, 5, 0, 0, 0, time.UTC)
	ws := Windows(issue)

	if len(ws) != 13 {
		t.Fatalf("Windows(05:00): expected 13 windows, got %d", len(ws))
	}
	first := ws[0]
	if first.Start.Hour() != 5 || first.End.Hour() != 8 {
		t.Errorf("first window: expected 05:00-08:00, got %v-%v", first.Start, first.End)
	}
	last := ws[len(ws)-1]
	if last.End.Day() != 2 || last.End.Hour() != 20 {
		t.Errorf("last window: expected end 20:00 next day, got %v", last.End)
	}
}

// TestWindows_EveningIssue tests that a 20:00 issue runs to the following
// day's 20:00 cutoff, giving exactly eight windows.
func TestWindows_EveningIssue(t *testing.T) {
	issue := time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC)
	ws := Windows(issue)
	if len(ws) != 8 {
		t.Fatalf("Windows(20:00): expected 8 windows, got %d", len(ws))
	}
	if ws[0].Start.Hour() != 20 {
		t.Errorf("first window start: expected 20:00, got %v", ws[0].Start)
	}
	last := ws[len(ws)-1]
	if last.End.Day() != 2 || last.End.Hour() != 20 {
		t.Errorf("last window end: expected next-day 20:00, got %v", last.End)
	}
}

// TestWindows_Contiguity tests that consecutive windows share a boundary and
// every window spans exactly three hours.
func TestWindows_Contiguity(t *testing.T) {
	for _, hour := range IssueHours {
		issue := time.Date(2024, 2, 10, hour, 0, 0, 0, time.UTC)
		ws := Windows(issue)
		for i, w := range ws {
			if w.End.Sub(w.Start) != 3*time.Hour {
				t.Errorf("issue %02d window %d: span %v, expected 3h", hour, i, w.End.Sub(w.Start))
			}
			if i > 0 && !w.Start.Equal(ws[i-1].End) {
				t.Errorf("issue %02d window %d: gap between %v and %v", hour, i, ws[i-1].End, w.Start)
			}
		}
	}
}

// TestTimeWindow_UTCRange tests the conversion of a local window to the
// inclusive UTC instant range used for sampling.
func TestTimeWindow_UTCRange(t *testing.T) {
	w := TimeWindow{
		Start: time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC),
	}
	r := w.UTCRange()
	if r.Start.Hour() != 0 || r.End.Hour() != 3 {
		t.Errorf("UTCRange: expected 00:00-03:00 UTC, got %v-%v", r.Start, r.End)
	}
	if !r.Contains(r.Start) || !r.Contains(r.End) {
		t.Errorf("UTCRange: bounds must be inclusive")
	}
	if r.Contains(r.End.Add(time.Second)) {
		t.Errorf("UTCRange: instant past End must be excluded")
	}
}
