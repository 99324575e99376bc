// Package table persists per-day forecast tables as CSV files.
package table

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"
)

// fileNameLayout names a table file after its issue instant in Beijing
// civil time.
const fileNameLayout = "2006-01-02_150405"

// FileName returns the CSV file name for an issue instant.
func FileName(issue time.Time) string {
	return issue.In(domain.Beijing).Format(fileNameLayout) + ".csv"
}

// Writer writes forecast tables into a directory, one file per issue.
type Writer struct {
	dir string
}

// NewWriter creates a table writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("table: failed to create %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// Write persists one forecast day. The file is named after the issue
// instant and replaced atomically via a rename.
func (w *Writer) Write(issue time.Time, rows []domain.ForecastRow) (string, error) {
	path := filepath.Join(w.dir, FileName(issue))
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("table: failed to create %s: %w", tmp, err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("table: failed to marshal %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("table: failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("table: failed to rename %s: %w", tmp, err)
	}
	return path, nil
}

// Read loads a previously written table.
func Read(path string) ([]domain.ForecastRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var rows []domain.ForecastRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("table: failed to unmarshal %s: %w", path, err)
	}
	return rows, nil
}

// List returns the table files under dir in name order, which is issue
// order given the file naming scheme.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("table: failed to list %s: %w", dir, err)
	}
	return matches, nil
}

// ParseFileName recovers the issue instant from a table file path.
func ParseFileName(path string) (time.Time, error) {
	base := filepath.Base(path)
	name := base[:len(base)-len(filepath.Ext(base))]
	t, err := time.ParseInLocation(fileNameLayout, name, domain.Beijing)
	if err != nil {
		return time.Time{}, fmt.Errorf("table: %w: %q", domain.ErrMalformedInput, base)
	}
	return t, nil
}
