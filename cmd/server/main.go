// Package main provides the forecast API HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/adapter/store/era5"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/config"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
	httpHandler "github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/http"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/observability"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/usecase"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("forecast-api version %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.ERA5.SurfacePath == "" {
		logger.Error("no surface file given (set ERA5_SURFACE_PATH)")
		os.Exit(1)
	}
	logger.Info("starting forecast API server",
		"addr", cfg.HTTPAddr,
		"surface", cfg.ERA5.SurfacePath,
		"level", cfg.ERA5.LevelPath)

	metrics := observability.NewMetrics()
	sampler := era5.NewStore(cfg.ERA5.SurfacePath, cfg.ERA5.LevelPath)
	builder := usecase.NewBuilder(
		sampler,
		logger,
		metrics,
		domain.RectRegion(cfg.ERA5.LatMin, cfg.ERA5.LatMax, cfg.ERA5.LonMin, cfg.ERA5.LonMax),
		domain.PointRegion(cfg.ERA5.PointLat, cfg.ERA5.PointLon),
	)

	router := httpHandler.SetupRouter(builder, cfg.CORSAllowedOrigins)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
