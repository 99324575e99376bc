package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
)

type fakeBuilder struct {
	rows []domain.ForecastRow
	err  error
}

func (f *fakeBuilder) BuildDayFrom(issue string) ([]domain.ForecastRow, error) {
	if _, err := domain.ParseLocal(issue); err != nil {
		return nil, err
	}
	return f.rows, f.err
}

func serve(t *testing.T, b TableBuilder, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := SetupRouter(b, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestGetForecast(t *testing.T) {
	maxC := 30.0
	b := &fakeBuilder{rows: []domain.ForecastRow{{
		FstTime:  "2024-07-01T05:00:00",
		MaxTempC: &maxC,
		Ifrain:   1.3,
	}}}

	w, body := serve(t, b, "/v1/forecast?issue=2024-07-01T05:00:00")
	assert.Equal(t, http.StatusOK, w.Code)

	rows, ok := body["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "2024-07-01T05:00:00", row["fsttime"])
	assert.Equal(t, 1.3, row["ifrain"])
	assert.Equal(t, 30.0, row["max_temp_c"])
}

func TestGetForecast_BadRequest(t *testing.T) {
	b := &fakeBuilder{}

	w, _ := serve(t, b, "/v1/forecast")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := serve(t, b, "/v1/forecast?issue=not-a-time")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "malformed")
}

func TestGetForecast_BuilderFailure(t *testing.T) {
	b := &fakeBuilder{err: fmt.Errorf("surface file unreadable")}
	w, _ := serve(t, b, "/v1/forecast?issue=2024-07-01T05:00:00")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetWindows(t *testing.T) {
	w, body := serve(t, &fakeBuilder{}, "/v1/windows?issue=2024-07-01T20:00:00")
	assert.Equal(t, http.StatusOK, w.Code)

	windows, ok := body["windows"].([]any)
	require.True(t, ok)
	assert.Len(t, windows, 8)
	first := windows[0].(map[string]any)
	assert.Equal(t, "2024-07-01T20:00:00", first["start"])
	assert.Equal(t, "2024-07-01T12:00:00Z", first["start_utc"])
}

func TestHealthAndMetrics(t *testing.T) {
	w, body := serve(t, &fakeBuilder{}, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	gin.SetMode(gin.TestMode)
	router := SetupRouter(&fakeBuilder{}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
