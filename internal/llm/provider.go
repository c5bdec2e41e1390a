package llm

import (
	"context"
	"net/http"
)

// ModelInvoker sends one prompt to the model and returns its raw reply text.
// Implementations make a single attempt; retrying is RetryingInvoker's job.
type ModelInvoker interface {
	// Invoke sends prompt as a single user message
	// ctx: context for cancellation control
	// Returns the content of the first choice or a TransportError/ProtocolError
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Extractor turns raw model text into a SQL string, or fails with an ExtractionError
type Extractor interface {
	Extract(raw string) (string, error)
}

// ExtractorFunc adapts an ordinary function to the Extractor interface
type ExtractorFunc func(raw string) (string, error)

// Extract calls f(raw)
func (f ExtractorFunc) Extract(raw string) (string, error) {
	return f(raw)
}

// HTTPClient is the subset of *http.Client used by ChatProvider
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
