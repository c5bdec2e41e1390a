package generator

import (
	"strings"
	"time"

	"text2sql-api/internal/common"
	"text2sql-api/internal/llm"
)

// Defaults applied by DefaultConfig
const (
	DefaultTimeout    = 5000 * time.Millisecond
	DefaultMaxRetries = 1
)

// Config holds the generation settings. It is copied into a Generator at
// construction and never changes afterwards.
type Config struct {
	// Timeout bounds each HTTP call to the model; zero means DefaultTimeout
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt
	MaxRetries int
	// Dialect is interpolated into the prompt
	Dialect string
	// Extractor turns model replies into SQL
	Extractor llm.Extractor
	// RetryInterval is the pause between attempts
	RetryInterval time.Duration
	// FailFastOnExtraction stops retrying on unusable replies
	FailFastOnExtraction bool
}

// DefaultConfig returns the defaults: 5s timeout, one retry, MySql, DefaultExtractor
func DefaultConfig() Config {
	return Config{
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		Dialect:    common.DefaultDialect,
		Extractor:  llm.NewDefaultExtractor(),
	}
}

// Validate checks the config and fills in blank optional fields
func (c *Config) Validate() error {
	if c.MaxRetries < 0 {
		return llm.NewConfigurationError("max_retries", "max retries must not be negative", "")
	}
	if c.Timeout < 0 {
		return llm.NewConfigurationError("timeout", "timeout must not be negative", "")
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryInterval < 0 {
		return llm.NewConfigurationError("retry_interval", "retry interval must not be negative", "")
	}
	if strings.TrimSpace(c.Dialect) == "" {
		c.Dialect = common.DefaultDialect
	}
	if c.Extractor == nil {
		c.Extractor = llm.NewDefaultExtractor()
	}
	return nil
}
