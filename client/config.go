package client

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings for building a Client. Retry behavior maps onto
// the underlying retryablehttp transport; per-request deadlines should come
// from the context passed to Execute.
type Config struct {
	// BaseURL is the root of the API, e.g. "https://api.example.com".
	BaseURL string `env:"CLIENT_BASE_URL"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `env:"CLIENT_USER_AGENT" envDefault:"go-client-cache"`

	// HTTPTimeout is the whole-request timeout applied to the transport.
	HTTPTimeout time.Duration `env:"CLIENT_HTTP_TIMEOUT" envDefault:"30s"`

	// RetryMax is the maximum number of retries for transient failures
	// (connection errors, 429, and 5xx). Zero disables retries.
	RetryMax int `env:"CLIENT_RETRY_MAX" envDefault:"0"`

	// RetryWaitMin and RetryWaitMax bound the retry backoff.
	RetryWaitMin time.Duration `env:"CLIENT_RETRY_WAIT_MIN" envDefault:"1s"`
	RetryWaitMax time.Duration `env:"CLIENT_RETRY_WAIT_MAX" envDefault:"30s"`

	// Debug enables request/response logging on the configured logger.
	Debug bool `env:"CLIENT_DEBUG"`
}

// FromEnv builds a Config from CLIENT_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing client config from env: %w", err)
	}

	return cfg, nil
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}

	return nil
}
