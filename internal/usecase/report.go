package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/adapter/llm"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/adapter/table"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/observability"
)

// Chatter is the completion capability the report generator consumes.
type Chatter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Reporter narrates persisted forecast tables into prose reports, one text
// file per issue instant. When the completion carries a chain-of-thought
// block, it is saved next to the report with a _think suffix.
type Reporter struct {
	chat     Chatter
	template *llm.Template
	logger   *slog.Logger
	metrics  *observability.Metrics

	tableDir  string
	reportDir string
}

// NewReporter creates a report generator reading tables from tableDir and
// writing reports under reportDir.
func NewReporter(chat Chatter, template *llm.Template, logger *slog.Logger, metrics *observability.Metrics, tableDir, reportDir string) *Reporter {
	return &Reporter{
		chat:      chat,
		template:  template,
		logger:    logger,
		metrics:   metrics,
		tableDir:  tableDir,
		reportDir: reportDir,
	}
}

// GenerateRange narrates every issue instant between two dates inclusive,
// at the standard issue hours. Days whose table file is absent or empty are
// skipped; a failed narration skips that issue and continues. Returns how
// many reports were written.
func (r *Reporter) GenerateRange(ctx context.Context, start, end time.Time) (int, error) {
	if start.After(end) {
		return 0, fmt.Errorf("report: start %v after end %v", start, end)
	}
	if err := os.MkdirAll(r.reportDir, 0o755); err != nil {
		return 0, fmt.Errorf("report: failed to create %s: %w", r.reportDir, err)
	}

	written := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, hour := range domain.IssueHours {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			issue := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, domain.Beijing)
			ok, err := r.generateOne(ctx, issue)
			if err != nil {
				return written, err
			}
			if ok {
				written++
			}
		}
	}
	return written, nil
}

// generateOne narrates a single issue instant. Returns false when the table
// is absent or the narration came back empty.
func (r *Reporter) generateOne(ctx context.Context, issue time.Time) (bool, error) {
	stamp := strings.TrimSuffix(table.FileName(issue), ".csv")
	tablePath := filepath.Join(r.tableDir, table.FileName(issue))

	raw, err := os.ReadFile(tablePath)
	if os.IsNotExist(err) {
		r.logger.Warn("table file missing", "path", tablePath)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("report: failed to read %s: %w", tablePath, err)
	}
	if len(raw) == 0 {
		r.logger.Warn("table file empty", "path", tablePath)
		return false, nil
	}

	completion, err := r.chat.Complete(ctx, r.template.Render(string(raw)))
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		r.logger.Warn("narration failed", "issue", stamp, "error", err)
		return false, nil
	}

	think, report := llm.SplitThink(completion)
	if report == "" {
		r.logger.Warn("narration came back empty", "issue", stamp)
		return false, nil
	}

	if err := os.WriteFile(filepath.Join(r.reportDir, stamp+".txt"), []byte(report), 0o644); err != nil {
		return false, fmt.Errorf("report: failed to write %s: %w", stamp, err)
	}
	if think != "" {
		if err := os.WriteFile(filepath.Join(r.reportDir, stamp+"_think.txt"), []byte(think), 0o644); err != nil {
			return false, fmt.Errorf("report: failed to write %s think file: %w", stamp, err)
		}
	}

	r.metrics.ReportsGenerated.Inc()
	r.logger.Info("report written", "issue", stamp)
	return true, nil
}
