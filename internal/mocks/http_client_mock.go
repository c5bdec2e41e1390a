package mocks

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// MockHTTPClient is a mock implementation of llm.HTTPClient.
// Queued outcomes are consumed in order; once the queue is empty the default
// outcome is returned for every call.
type MockHTTPClient struct {
	mu sync.RWMutex

	requests []CapturedRequest
	queue    []mockOutcome

	defaultOutcome mockOutcome
	delay          time.Duration
}

type mockOutcome struct {
	statusCode int
	body       string
	err        error
}

// CapturedRequest represents a captured HTTP request for verification
type CapturedRequest struct {
	Method    string
	URL       *url.URL
	Headers   http.Header
	Body      []byte
	Timestamp time.Time
}

// NewMockHTTPClient creates a new mock HTTP client that answers 200 with "{}"
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		requests:       make([]CapturedRequest, 0),
		defaultOutcome: mockOutcome{statusCode: http.StatusOK, body: "{}"},
	}
}

// Do records the request and returns the next queued outcome, or the default one
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	body := []byte{}
	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		body = bodyBytes
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	m.requests = append(m.requests, CapturedRequest{
		Method:    req.Method,
		URL:       req.URL,
		Headers:   req.Header.Clone(),
		Body:      body,
		Timestamp: time.Now(),
	})

	outcome := m.defaultOutcome
	if len(m.queue) > 0 {
		outcome = m.queue[0]
		m.queue = m.queue[1:]
	}
	delay := m.delay
	m.mu.Unlock()

	// Ends early when the request context is done
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	if outcome.err != nil {
		return nil, outcome.err
	}

	return &http.Response{
		StatusCode: outcome.statusCode,
		Status:     fmt.Sprintf("%d %s", outcome.statusCode, http.StatusText(outcome.statusCode)),
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(outcome.body)),
		Request:    req,
	}, nil
}

// ==============================================================================
// Configuration Methods for Setting Up Mock Responses
// ==============================================================================

// QueueResponse appends a response to be returned by the next unanswered call
func (m *MockHTTPClient) QueueResponse(statusCode int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockOutcome{statusCode: statusCode, body: body})
}

// QueueError appends a transport error to be returned by the next unanswered call
func (m *MockHTTPClient) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockOutcome{err: err})
}

// SetDefaultResponse configures the response returned once the queue is empty
func (m *MockHTTPClient) SetDefaultResponse(statusCode int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultOutcome = mockOutcome{statusCode: statusCode, body: body}
}

// SetDefaultError configures the error returned once the queue is empty
func (m *MockHTTPClient) SetDefaultError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultOutcome = mockOutcome{err: err}
}

// SimulateDelay holds every response for delay, or until the request context is done
func (m *MockHTTPClient) SimulateDelay(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = delay
}

// ==============================================================================
// Request Tracking and Verification Methods
// ==============================================================================

// GetRequests returns all captured requests
func (m *MockHTTPClient) GetRequests() []CapturedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	requests := make([]CapturedRequest, len(m.requests))
	copy(requests, m.requests)
	return requests
}

// GetRequestCount returns the total number of requests made
func (m *MockHTTPClient) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// GetLastRequest returns the last captured request
func (m *MockHTTPClient) GetLastRequest() *CapturedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.requests) == 0 {
		return nil
	}
	return &m.requests[len(m.requests)-1]
}

// ==============================================================================
// Factory Methods for Common Test Scenarios
// ==============================================================================

// ChatCompletionBody builds a chat-completion envelope whose first choice carries content
func ChatCompletionBody(content string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(content)
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":"%s"}}]}`, escaped)
}

// SQLReply wraps sql in the fenced JSON block the default prompt asks for
func SQLReply(sql string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(sql)
	return fmt.Sprintf("```json\n{\"sql\": \"%s\"}\n```", escaped)
}

// CreateChatSuccessClient creates a mock client whose every reply yields sql
func CreateChatSuccessClient(sql string) *MockHTTPClient {
	client := NewMockHTTPClient()
	client.SetDefaultResponse(http.StatusOK, ChatCompletionBody(SQLReply(sql)))
	return client
}

// CreateNetworkErrorClient creates a mock client that simulates network errors
func CreateNetworkErrorClient() *MockHTTPClient {
	client := NewMockHTTPClient()
	client.SetDefaultError(fmt.Errorf("network error: connection refused"))
	return client
}
