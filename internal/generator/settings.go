package generator

import (
	"time"

	"text2sql-api/internal/config"
	"text2sql-api/internal/llm"
)

// FromConfig translates loaded settings into an endpoint and construction options
func FromConfig(cfg *config.Config) (llm.ModelEndpoint, []Option, error) {
	endpoint := llm.ModelEndpoint{
		ChatURL: cfg.LLM.APIEndpoint,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}

	extractor, err := llm.NewExtractor(cfg.Generation.Extractor)
	if err != nil {
		return llm.ModelEndpoint{}, nil, err
	}

	opts := []Option{
		WithConfig(Config{
			Timeout:              time.Duration(cfg.LLM.TimeoutMs) * time.Millisecond,
			MaxRetries:           cfg.LLM.MaxRetries,
			Dialect:              cfg.Generation.Dialect,
			Extractor:            extractor,
			RetryInterval:        time.Duration(cfg.LLM.RetryIntervalMs) * time.Millisecond,
			FailFastOnExtraction: cfg.Generation.FailFastOnExtraction,
		}),
	}

	if cfg.Breaker.Enabled {
		opts = append(opts, WithBreaker(llm.BreakerConfig{
			Name:             "chat-model",
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         time.Duration(cfg.Breaker.IntervalSec) * time.Second,
			Timeout:          time.Duration(cfg.Breaker.TimeoutSec) * time.Second,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		}))
	}

	return endpoint, opts, nil
}
