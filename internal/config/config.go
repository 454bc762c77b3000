// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file/env on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Default configuration values. The API key default is the published
// assessment key; real deployments override it via TRIAGE_API_KEY.
const (
	defaultAPIKey      = "ak_55b4e28798ca491421030133dab7ec9482c298cc50e0c9bb"
	defaultBaseURL     = "https://assessment.ksensetech.com/api"
	defaultPageSize    = 20
	defaultMaxRetries  = 5
	defaultPageDelayMS = 150

	// maxPageSize is the largest page size the assessment API accepts.
	maxPageSize = 20
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// APIKey authenticates against the assessment API (x-api-key header).
	APIKey string `koanf:"api_key"`

	// BaseURL is the assessment API root, e.g. "https://assessment.ksensetech.com/api".
	BaseURL string `koanf:"base_url"`

	// PageSize sets the per-page record limit for GET /patients. Capped at 20.
	PageSize int `koanf:"page_size"`

	// MaxRetries bounds attempts per request for retryable statuses.
	MaxRetries int `koanf:"max_retries"`

	// PageDelayMS is the pacing delay between successive page requests.
	PageDelayMS int `koanf:"page_delay_ms"`

	// MetricsAddr, when non-empty, enables a Prometheus /metrics listener.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		APIKey:      defaultAPIKey,
		BaseURL:     defaultBaseURL,
		PageSize:    defaultPageSize,
		MaxRetries:  defaultMaxRetries,
		PageDelayMS: defaultPageDelayMS,
	}
}
