package generator

import (
	"text2sql-api/internal/common"
	"text2sql-api/internal/events"
	"text2sql-api/internal/llm"
	"text2sql-api/internal/prompt"
	"text2sql-api/internal/schema"

	"go.uber.org/zap"
)

type options struct {
	config     Config
	tables     []schema.TableMeta
	logger     *zap.Logger
	eventBus   events.EventBus
	invoker    llm.ModelInvoker
	httpClient llm.HTTPClient
	breaker    *llm.BreakerConfig
	builder    *prompt.Builder
	clock      common.Clock
}

// Option configures a Generator at construction
type Option func(*options)

// WithConfig replaces the whole generation config
func WithConfig(config Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithTables pre-seeds the catalog
func WithTables(tables ...schema.TableMeta) Option {
	return func(o *options) {
		o.tables = append(o.tables, tables...)
	}
}

// WithDialect overrides the SQL dialect named in prompts
func WithDialect(dialect string) Option {
	return func(o *options) {
		o.config.Dialect = dialect
	}
}

// WithMaxRetries overrides the retry budget
func WithMaxRetries(maxRetries int) Option {
	return func(o *options) {
		o.config.MaxRetries = maxRetries
	}
}

// WithExtractor overrides the extraction strategy
func WithExtractor(extractor llm.Extractor) Option {
	return func(o *options) {
		o.config.Extractor = extractor
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventBus publishes generation and schema events to bus
func WithEventBus(bus events.EventBus) Option {
	return func(o *options) {
		o.eventBus = bus
	}
}

// WithInvoker replaces the HTTP chat provider; the endpoint is then not validated
func WithInvoker(invoker llm.ModelInvoker) Option {
	return func(o *options) {
		o.invoker = invoker
	}
}

// WithHTTPClient sets the client used by the chat provider. The client's own
// timeout applies instead of Config.Timeout.
func WithHTTPClient(client llm.HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithBreaker wraps the model invoker in a circuit breaker
func WithBreaker(config llm.BreakerConfig) Option {
	return func(o *options) {
		o.breaker = &config
	}
}

// WithPromptBuilder replaces the default prompt template
func WithPromptBuilder(builder *prompt.Builder) Option {
	return func(o *options) {
		o.builder = builder
	}
}

// WithClock sets the clock used for duration measurements
func WithClock(clock common.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}
