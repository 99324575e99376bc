// forecast-report narrates previously written forecast tables into prose
// reports through an OpenAI-compatible chat endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/adapter/llm"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/config"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/observability"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/usecase"
)

const dateLayout = "2006-01-02"

func main() {
	csvDir := flag.String("csv-dir", "", "directory of forecast CSV tables (overrides TABLE_DIR)")
	outDir := flag.String("out-dir", "./report_by_llm", "directory for generated reports")
	prompt := flag.String("prompt", "./prompt/forecast.txt", "prompt template file with <!INPUT!> marker")
	start := flag.String("start", "", "first date, YYYY-MM-DD (required)")
	end := flag.String("end", "", "last date, YYYY-MM-DD (defaults to start)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *csvDir != "" {
		cfg.Table.Dir = *csvDir
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.RequireChat(); err != nil {
		logger.Error("chat endpoint not configured", "error", err)
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

	template, err := llm.LoadTemplate(*prompt)
	if err != nil {
		logger.Error("failed to load prompt template", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()
	chat := llm.NewClient(cfg.Chat, logger, metrics)
	reporter := usecase.NewReporter(chat, template, logger, metrics, cfg.Table.Dir, *outDir)

	written, err := reporter.GenerateRange(ctx, startDay, endDay)
	if err != nil {
		logger.Error("report generation aborted", "written", written, "error", err)
		os.Exit(1)
	}
	logger.Info("done", "reports", written)
}
