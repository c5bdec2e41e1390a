package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// AttemptObserver is notified after every attempt; err is nil on success
type AttemptObserver func(attempt int, err error)

// RetryConfig controls RetryingInvoker
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt; 0 means one attempt
	MaxRetries int
	// Interval is the pause between attempts; zero retries immediately
	Interval time.Duration
	// FailFastOnExtraction stops retrying on an ExtractionError; other errors still retry
	FailFastOnExtraction bool
}

// RetryingInvoker composes a ModelInvoker, an Extractor and the SELECT guard
// into a bounded retry loop.
type RetryingInvoker struct {
	invoker   ModelInvoker
	extractor Extractor
	config    RetryConfig
	logger    *zap.Logger
	observer  AttemptObserver
}

// NewRetryingInvoker creates a new RetryingInvoker
func NewRetryingInvoker(invoker ModelInvoker, extractor Extractor, config RetryConfig, logger *zap.Logger) *RetryingInvoker {
	if extractor == nil {
		extractor = NewDefaultExtractor()
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingInvoker{
		invoker:   invoker,
		extractor: extractor,
		config:    config,
		logger:    logger,
	}
}

// WithObserver returns a copy of r that reports every attempt to observer
func (r *RetryingInvoker) WithObserver(observer AttemptObserver) *RetryingInvoker {
	clone := *r
	clone.observer = observer
	return &clone
}

// InvokeWithRetry runs attempts until one yields valid SQL or MaxRetries is exhausted.
// Every failure is retried the same way unless FailFastOnExtraction is set.
func (r *RetryingInvoker) InvokeWithRetry(ctx context.Context, prompt string) (string, error) {
	var (
		sql     string
		lastErr error
		attempt int
	)

	operation := func() error {
		attempt++

		result, err := r.attempt(ctx, prompt)
		if r.observer != nil {
			r.observer(attempt, err)
		}
		if err != nil {
			lastErr = err
			r.logger.Warn("Generation attempt failed",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", r.config.MaxRetries),
				zap.String("kind", ErrorKind(err)),
				zap.Error(err))

			if r.config.FailFastOnExtraction && IsExtractionError(err) {
				return backoff.Permanent(err)
			}
			return err
		}

		sql = result
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(r.newBackOff(), uint64(r.config.MaxRetries)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		failure := NewGenerationFailedError(attempt, lastErr)
		r.logger.Error("SQL generation failed after retries",
			zap.Int("attempts", failure.Attempts),
			zap.Int("retries", failure.Retries),
			zap.Error(lastErr))
		return "", failure
	}

	return sql, nil
}

func (r *RetryingInvoker) attempt(ctx context.Context, prompt string) (string, error) {
	raw, err := r.invoker.Invoke(ctx, prompt)
	if err != nil {
		return "", err
	}

	sql, err := r.extractor.Extract(raw)
	if err != nil {
		return "", err
	}

	if err := CheckSelectStatement(sql); err != nil {
		return "", err
	}
	return sql, nil
}

func (r *RetryingInvoker) newBackOff() backoff.BackOff {
	if r.config.Interval <= 0 {
		return &backoff.ZeroBackOff{}
	}
	return backoff.NewConstantBackOff(r.config.Interval)
}
