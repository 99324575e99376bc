package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestWriteAndRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	issue := time.Date(2024, 7, 1, 5, 0, 0, 0, domain.Beijing)
	cloud := 2
	rows := []domain.ForecastRow{
		{
			FstTime:     "2024-07-01T05:00:00",
			MaxTempC:    f64(31.2),
			MinTempC:    f64(26.8),
			RHMin:       f64(55),
			RHMax:       f64(92),
			WDir:        f64(135.4),
			GustScale:   f64(6.5),
			CloudCode:   &cloud,
			Ifrain:      1.3,
			TPMax:       6.02,
			RainPercent: 0.2,
		},
		{
			FstTime: "2024-07-01T08:00:00",
			// A window with every optional column missing still writes.
		},
	}

	path, err := w.Write(issue, rows)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01_050000.csv", filepath.Base(path))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, rows[0].FstTime, got[0].FstTime)
	assert.InDelta(t, 31.2, *got[0].MaxTempC, 1e-9)
	assert.Equal(t, 2, *got[0].CloudCode)
	assert.InDelta(t, 1.3, got[0].Ifrain, 1e-9)
	assert.Nil(t, got[1].MaxTempC)
	assert.Zero(t, got[1].Ifrain)
}

func TestWrite_HeaderColumns(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	issue := time.Date(2024, 1, 15, 20, 0, 0, 0, domain.Beijing)
	path, err := w.Write(issue, []domain.ForecastRow{{FstTime: "2024-01-15T20:00:00"}})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	header := strings.SplitN(string(raw), "\n", 2)[0]
	header = strings.TrimRight(header, "\r")
	assert.Equal(t,
		"fsttime,max_temp_c,min_temp_c,rhmin,rhmax,wdir,uvg,cloud,ifrain,tpmax,rain_percent",
		header)
}

func TestWrite_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	issue := time.Date(2024, 7, 1, 11, 0, 0, 0, domain.Beijing)
	_, err = w.Write(issue, []domain.ForecastRow{{FstTime: "2024-07-01T11:00:00"}, {FstTime: "2024-07-01T14:00:00"}})
	require.NoError(t, err)
	path, err := w.Write(issue, []domain.ForecastRow{{FstTime: "2024-07-01T11:00:00"}})
	require.NoError(t, err)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// No leftover temp file.
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestListAndParseFileName(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	issues := []time.Time{
		time.Date(2024, 7, 2, 5, 0, 0, 0, domain.Beijing),
		time.Date(2024, 7, 1, 17, 0, 0, 0, domain.Beijing),
	}
	for _, issue := range issues {
		_, err := w.Write(issue, nil)
		require.NoError(t, err)
	}

	files, err := List(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	// Name order is issue order.
	assert.Equal(t, "2024-07-01_170000.csv", filepath.Base(files[0]))

	issue, err := ParseFileName(files[0])
	require.NoError(t, err)
	assert.Equal(t, 17, issue.Hour())
	assert.Equal(t, 1, issue.Day())

	_, err = ParseFileName(filepath.Join(dir, "notes.csv"))
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}
