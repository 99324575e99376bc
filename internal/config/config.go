// Package config loads the engine configuration from the environment.
//
// The loading sequence is:
//  1. Load a .env file via godotenv (non-fatal if absent).
//  2. Use envconfig to process struct tags and populate the Config struct.
//  3. Validate the cross-field constraints envconfig cannot express.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full engine configuration. Every field has a default that
// produces a working local setup, except the chat credentials which are
// validated only when the report generator runs.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// LogFormat is "json" or "text".
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// HTTPAddr is the listen address of the API server.
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// CORSAllowedOrigins is a comma-separated origin list; empty allows all.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	ERA5  ERA5Config
	Chat  ChatConfig
	Table TableConfig
}

// ERA5Config locates the reanalysis files and the sampled region.
type ERA5Config struct {
	// SurfacePath is the NetCDF file holding the surface variables.
	SurfacePath string `envconfig:"ERA5_SURFACE_PATH"`
	// LevelPath is the NetCDF file holding the pressure-level variables.
	LevelPath string `envconfig:"ERA5_LEVEL_PATH"`

	// Regional rectangle for the gridded calculators.
	LatMin float64 `envconfig:"REGION_LAT_MIN" default:"30.5"`
	LatMax float64 `envconfig:"REGION_LAT_MAX" default:"32"`
	LonMin float64 `envconfig:"REGION_LON_MIN" default:"120.5"`
	LonMax float64 `envconfig:"REGION_LON_MAX" default:"122"`

	// Observation point for the humidity calculator.
	PointLat float64 `envconfig:"POINT_LAT" default:"31.1922"`
	PointLon float64 `envconfig:"POINT_LON" default:"121.4317"`
}

// ChatConfig configures the OpenAI-compatible report generator.
type ChatConfig struct {
	APIKey  string `envconfig:"CHAT_API_KEY"`
	BaseURL string `envconfig:"CHAT_API_BASE_URL"`
	Model   string `envconfig:"CHAT_MODEL" default:"Qwen3-32B"`
	// Attempts bounds the per-request submission attempts.
	Attempts int `envconfig:"CHAT_ATTEMPTS" default:"3"`
}

// TableConfig locates the emitted forecast tables.
type TableConfig struct {
	Dir string `envconfig:"TABLE_DIR" default:"data/tables"`
}

// Load reads the configuration from the environment, honoring a local .env
// file when present.
func Load() (*Config, error) {
	// Silently succeeds when no .env file exists; real environment
	// variables take precedence either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the constraints envconfig tags cannot express.
func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("config: invalid LOG_FORMAT %q", c.LogFormat)
	}
	if c.ERA5.LatMin > c.ERA5.LatMax {
		return fmt.Errorf("config: REGION_LAT_MIN %.4f above REGION_LAT_MAX %.4f", c.ERA5.LatMin, c.ERA5.LatMax)
	}
	if c.ERA5.LonMin > c.ERA5.LonMax {
		return fmt.Errorf("config: REGION_LON_MIN %.4f above REGION_LON_MAX %.4f", c.ERA5.LonMin, c.ERA5.LonMax)
	}
	if c.Chat.Attempts < 1 {
		return fmt.Errorf("config: CHAT_ATTEMPTS must be at least 1, got %d", c.Chat.Attempts)
	}
	return nil
}

// RequireChat validates the fields the report generator depends on.
func (c *Config) RequireChat() error {
	if c.Chat.APIKey == "" {
		return fmt.Errorf("config: CHAT_API_KEY is required")
	}
	if c.Chat.BaseURL == "" {
		return fmt.Errorf("config: CHAT_API_BASE_URL is required")
	}
	return nil
}
