// forecast-csv builds per-issue forecast tables from ERA5 NetCDF files and
// writes them as CSV, one file per issue instant.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/adapter/store/era5"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/adapter/table"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/config"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/observability"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/usecase"
)

const dateLayout = "2006-01-02"

func main() {
	surface := flag.String("surface", "", "ERA5 surface NetCDF file (overrides ERA5_SURFACE_PATH)")
	level := flag.String("level", "", "ERA5 pressure-level NetCDF file (overrides ERA5_LEVEL_PATH)")
	out := flag.String("out", "", "output directory for CSV tables (overrides TABLE_DIR)")
	start := flag.String("start", "", "first forecast date, YYYY-MM-DD (required)")
	end := flag.String("end", "", "last forecast date, YYYY-MM-DD (defaults to start)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *surface != "" {
		cfg.ERA5.SurfacePath = *surface
	}
	if *level != "" {
		cfg.ERA5.LevelPath = *level
	}
	if *out != "" {
		cfg.Table.Dir = *out
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.ERA5.SurfacePath == "" {
		logger.Error("no surface file given (use -surface or ERA5_SURFACE_PATH)")
		os.Exit(1)
	}
	if *start == "" {
		logger.Error("no start date given (use -start)")
		os.Exit(1)
	}
	if *end == "" {
		*end = *start
	}
	startDay, err := time.ParseInLocation(dateLayout, *start, domain.Beijing)
	if err != nil {
		logger.Error("invalid start date", "value", *start, "error", err)
		os.Exit(1)
	}
	endDay, err := time.ParseInLocation(dateLayout, *end, domain.Beijing)
	if err != nil {
		logger.Error("invalid end date", "value", *end, "error", err)
		os.Exit(1)
	}
	if startDay.After(endDay) {
		logger.Error("start date after end date", "start", *start, "end", *end)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	sampler := era5.NewStore(cfg.ERA5.SurfacePath, cfg.ERA5.LevelPath)
	builder := usecase.NewBuilder(
		sampler,
		logger,
		metrics,
		domain.RectRegion(cfg.ERA5.LatMin, cfg.ERA5.LatMax, cfg.ERA5.LonMin, cfg.ERA5.LonMax),
		domain.PointRegion(cfg.ERA5.PointLat, cfg.ERA5.PointLon),
	)
	writer, err := table.NewWriter(cfg.Table.Dir)
	if err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		os.Exit(1)
	}

	written := 0
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		for _, hour := range domain.IssueHours {
			issue := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, domain.Beijing)

			rows, err := builder.BuildDay(issue)
			if err != nil {
				logger.Error("failed to build forecast day",
					"issue", issue.Format(domain.LocalTimeLayout),
					"error", err)
				continue
			}
			path, err := writer.Write(issue, rows)
			if err != nil {
				logger.Error("failed to write table", "error", err)
				continue
			}
			metrics.RowsWritten.Add(float64(len(rows)))
			logger.Info("table written", "path", path, "rows", len(rows))
			written++
		}
	}

	logger.Info("done", "tables", written)
	if written == 0 {
		os.Exit(1)
	}
}
