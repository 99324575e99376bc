package store

import "github.com/Zhang-l-i-n/Weather-LLM-DataEngine/internal/domain"

// FieldSampler is the interface for sampling gridded reanalysis fields over
// a time range and region.
type FieldSampler interface {
	// Sample reads a surface variable, e.g. "t2m" or "tp".
	Sample(name string, tr domain.TimeRange, region domain.Region) (*domain.Field, error)

	// SampleLevel reads a pressure-level variable at the given level in hPa,
	// e.g. "r" at 850.
	SampleLevel(name string, levelHPa float64, tr domain.TimeRange, region domain.Region) (*domain.Field, error)
}
