// Package generator turns natural-language questions into validated SELECT
// statements using a cached schema catalog and a remote chat model.
package generator

import (
	"context"
	"strings"
	"time"

	"text2sql-api/internal/common"
	"text2sql-api/internal/events"
	"text2sql-api/internal/llm"
	"text2sql-api/internal/metrics"
	"text2sql-api/internal/prompt"
	"text2sql-api/internal/schema"

	"go.uber.org/zap"
)

// Request is a single generation call.
// A nil Tables uses the catalog; a non-nil empty slice is rejected.
// A non-empty PromptOverride is sent as-is instead of the built prompt.
type Request struct {
	Question       string             `json:"question"`
	Tables         []schema.TableMeta `json:"tables,omitempty"`
	PromptOverride string             `json:"prompt,omitempty"`
}

// Service defines the operations exposed by Generator
type Service interface {
	Generate(ctx context.Context, req Request) (string, error)
	Cache(table schema.TableMeta) error
	CacheAll(tables []schema.TableMeta) error
	Clear()
	Refresh(tables []schema.TableMeta) error
	RefreshSingle(table schema.TableMeta) error
	Tables() []schema.TableMeta
	Len() int
}

// Generator implements Service. It is safe for concurrent use.
type Generator struct {
	config    Config
	catalog   *schema.Catalog
	builder   *prompt.Builder
	retrying  *llm.RetryingInvoker
	publisher *events.Publisher
	logger    *zap.Logger
	clock     common.Clock
}

var _ Service = (*Generator)(nil)

// New creates a Generator for endpoint
func New(endpoint llm.ModelEndpoint, opts ...Option) (*Generator, error) {
	o := options{
		config:  DefaultConfig(),
		logger:  zap.NewNop(),
		builder: prompt.NewBuilder(),
		clock:   common.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	config := o.config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	invoker := o.invoker
	if invoker == nil {
		if err := endpoint.Validate(); err != nil {
			return nil, err
		}
		if o.httpClient != nil {
			invoker = llm.NewChatProviderWithClient(endpoint, o.httpClient, o.logger)
		} else {
			invoker = llm.NewChatProvider(endpoint, config.Timeout, o.logger)
		}
	}
	if o.breaker != nil {
		invoker = llm.NewBreakerInvoker(invoker, *o.breaker, o.logger)
	}

	catalog, err := schema.NewCatalog(o.tables...)
	if err != nil {
		return nil, err
	}
	metrics.SetCatalogTables(catalog.Len())

	retrying := llm.NewRetryingInvoker(invoker, config.Extractor, llm.RetryConfig{
		MaxRetries:           config.MaxRetries,
		Interval:             config.RetryInterval,
		FailFastOnExtraction: config.FailFastOnExtraction,
	}, o.logger)

	o.logger.Info("SQL generator initialized",
		zap.String("model", endpoint.Model),
		zap.String("dialect", config.Dialect),
		zap.Int("max_retries", config.MaxRetries),
		zap.Duration("timeout", config.Timeout),
		zap.Int("tables", catalog.Len()))

	return &Generator{
		config:    config,
		catalog:   catalog,
		builder:   o.builder,
		retrying:  retrying,
		publisher: events.NewPublisher(o.eventBus, o.logger),
		logger:    o.logger,
		clock:     o.clock,
	}, nil
}

// Config returns a copy of the generation config
func (g *Generator) Config() Config {
	return g.config
}

// Generate returns a single validated SELECT statement answering req.Question.
// Input problems fail with common.InvalidArgumentError before any network
// call; model failures surface as llm.GenerationFailedError.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	requestID := common.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = common.NewRequestID()
	}
	logger := g.logger.With(zap.String("request_id", string(requestID)))
	start := g.clock.Now()

	tables, err := g.resolveTables(req)
	if err != nil {
		metrics.ObserveGeneration(metrics.OutcomeInvalidArgument, g.clock.Now().Sub(start))
		logger.Debug("Rejected generation request", zap.Error(err))
		return "", err
	}

	text := req.PromptOverride
	if text == "" {
		text = g.builder.Build(req.Question, tables, g.config.Dialect)
	}

	attempts := 0
	invoker := g.retrying.WithObserver(func(attempt int, err error) {
		attempts = attempt
		metrics.RecordAttempt(llm.ErrorKind(err))
	})

	logger.Debug("Generating SQL",
		zap.String("question", req.Question),
		zap.Int("tables", len(tables)),
		zap.Bool("prompt_override", req.PromptOverride != ""))

	sql, err := invoker.InvokeWithRetry(ctx, text)
	elapsed := g.clock.Now().Sub(start)

	if err != nil {
		metrics.ObserveGeneration(metrics.OutcomeFailed, elapsed)
		g.publishFailure(requestID, req.Question, err, elapsed)
		return "", err
	}

	metrics.ObserveGeneration(metrics.OutcomeSuccess, elapsed)
	logger.Info("SQL generated",
		zap.Int("attempts", attempts),
		zap.Duration("duration", elapsed),
		zap.String("sql", sql))

	g.publisher.Publish(events.TopicSQLGenerated, events.SQLGenerated{
		Event:      events.NewEventWithID(string(requestID)),
		Question:   req.Question,
		SQL:        sql,
		Dialect:    g.config.Dialect,
		Attempts:   attempts,
		DurationMs: elapsed.Milliseconds(),
	})
	return sql, nil
}

func (g *Generator) resolveTables(req Request) ([]schema.TableMeta, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, common.NewInvalidArgumentError("question", "question must not be blank")
	}

	if req.Tables == nil {
		tables := g.catalog.Snapshot()
		if len(tables) == 0 {
			return nil, common.NewInvalidArgumentError("tables",
				"schema catalog is empty: cache table metadata with Cache or CacheAll before generating")
		}
		return tables, nil
	}

	if len(req.Tables) == 0 {
		return nil, common.NewInvalidArgumentError("tables", "at least one table is required")
	}
	return req.Tables, nil
}

func (g *Generator) publishFailure(requestID common.RequestID, question string, err error, elapsed time.Duration) {
	event := events.GenerationFailed{
		Event:      events.NewEventWithID(string(requestID)),
		Question:   question,
		Reason:     err.Error(),
		Kind:       llm.ErrorKind(err),
		DurationMs: elapsed.Milliseconds(),
	}
	if failure, ok := llm.AsGenerationFailed(err); ok {
		event.Retries = failure.Retries
		event.Kind = llm.ErrorKind(failure.Cause)
	}
	g.publisher.Publish(events.TopicGenerationFailed, event)
}
