// Package http exposes the forecast engine over a small JSON API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
)

// TableBuilder is the build capability the handlers consume.
type TableBuilder interface {
	BuildDayFrom(issue string) ([]domain.ForecastRow, error)
}

// Handler handles HTTP requests for forecast tables.
type Handler struct {
	builder TableBuilder
}

// NewHandler creates a new HTTP handler.
func NewHandler(builder TableBuilder) *Handler {
	return &Handler{builder: builder}
}

// GetForecast handles GET /v1/forecast?issue=2021-01-01T05:00:00.
func (h *Handler) GetForecast(c *gin.Context) {
	issue := c.Query("issue")
	if issue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "issue parameter is required"})
		return
	}

	rows, err := h.builder.BuildDayFrom(issue)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issue": issue,
		"rows":  rows,
	})
}

// GetWindows handles GET /v1/windows?issue=..., returning the window list
// without sampling any data.
func (h *Handler) GetWindows(c *gin.Context) {
	issue := c.Query("issue")
	if issue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "issue parameter is required"})
		return
	}

	windows, err := domain.WindowsFrom(issue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	type windowInfo struct {
		Start    string `json:"start"`
		End      string `json:"end"`
		StartUTC string `json:"start_utc"`
		EndUTC   string `json:"end_utc"`
	}
	response := make([]windowInfo, len(windows))
	for i, w := range windows {
		response[i] = windowInfo{
			Start:    w.Start.Format(domain.LocalTimeLayout),
			End:      w.End.Format(domain.LocalTimeLayout),
			StartUTC: w.StartUTC().Format(time.RFC3339),
			EndUTC:   w.EndUTC().Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, gin.H{"windows": response})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
