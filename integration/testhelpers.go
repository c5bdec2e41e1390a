//go:build integration

package integration

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"text2sql-api/api/routes"
	"text2sql-api/internal/events"
	"text2sql-api/internal/generator"
	"text2sql-api/internal/llm"
	"text2sql-api/internal/mocks"
	"text2sql-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// modelServer is a chat-completion endpoint that answers with a fixed
// sequence of replies, repeating the last one once the sequence runs out
type modelServer struct {
	*httptest.Server
	calls atomic.Int32
}

func newModelServer(t *testing.T, replies ...string) *modelServer {
	t.Helper()
	require.NotEmpty(t, replies)

	ms := &modelServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(ms.calls.Add(1)) - 1
		if n >= len(replies) {
			n = len(replies) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mocks.ChatCompletionBody(replies[n])))
	}))
	t.Cleanup(ms.Close)
	return ms
}

// eventRecorder collects every event published on the bus
type eventRecorder struct {
	mu        sync.Mutex
	generated []events.SQLGenerated
	failed    []events.GenerationFailed
	schema    []events.SchemaChanged
}

func (r *eventRecorder) Generated() []events.SQLGenerated {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.SQLGenerated(nil), r.generated...)
}

func (r *eventRecorder) Failed() []events.GenerationFailed {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.GenerationFailed(nil), r.failed...)
}

func (r *eventRecorder) Schema() []events.SchemaChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.SchemaChanged(nil), r.schema...)
}

type testApp struct {
	router   *gin.Engine
	model    *modelServer
	recorder *eventRecorder
}

// setupApp wires the HTTP routes, a real generator and a real event bus
// against a fake model endpoint
func setupApp(t *testing.T, maxRetries int, replies ...string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	zapLogger := zaptest.NewLogger(t)
	bus := events.NewEventBus(zapLogger)
	t.Cleanup(func() { _ = bus.Close() })

	recorder := &eventRecorder{}
	require.NoError(t, bus.Subscribe(events.TopicSQLGenerated, func(e events.SQLGenerated) {
		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		recorder.generated = append(recorder.generated, e)
	}))
	require.NoError(t, bus.Subscribe(events.TopicGenerationFailed, func(e events.GenerationFailed) {
		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		recorder.failed = append(recorder.failed, e)
	}))
	require.NoError(t, bus.Subscribe(events.TopicSchemaChanged, func(e events.SchemaChanged) {
		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		recorder.schema = append(recorder.schema, e)
	}))
	require.NoError(t, events.RegisterAuditLog(bus, zapLogger))

	model := newModelServer(t, replies...)
	gen, err := generator.New(
		llm.ModelEndpoint{ChatURL: model.URL, Model: "test-model"},
		generator.WithMaxRetries(maxRetries),
		generator.WithEventBus(bus),
		generator.WithLogger(zapLogger),
	)
	require.NoError(t, err)

	router := gin.New()
	routes.SetupRoutes(router, gen, &logger.Logger{SugaredLogger: zapLogger.Sugar()})

	return &testApp{router: router, model: model, recorder: recorder}
}
