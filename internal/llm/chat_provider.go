package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ChatProvider implements ModelInvoker for OpenAI-compatible chat-completion endpoints
type ChatProvider struct {
	endpoint   ModelEndpoint
	logger     *zap.Logger
	httpClient HTTPClient
}

// NewChatProvider creates a new ChatProvider whose HTTP calls are bounded by timeout
func NewChatProvider(endpoint ModelEndpoint, timeout time.Duration, logger *zap.Logger) *ChatProvider {
	return NewChatProviderWithClient(endpoint, &http.Client{Timeout: timeout}, logger)
}

// NewChatProviderWithClient creates a ChatProvider with a caller-supplied HTTP client
func NewChatProviderWithClient(endpoint ModelEndpoint, client HTTPClient, logger *zap.Logger) *ChatProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatProvider{
		endpoint:   endpoint,
		logger:     logger,
		httpClient: client,
	}
}

// Invoke implements the ModelInvoker interface
func (p *ChatProvider) Invoke(ctx context.Context, prompt string) (string, error) {
	p.logger.Debug("Invoking chat model",
		zap.String("model", p.endpoint.Model),
		zap.String("endpoint", p.endpoint.ChatURL),
		zap.String("prompt", prompt))

	chatReq := ChatRequest{
		Model: p.endpoint.Model,
		Messages: []ChatMessage{
			{Role: RoleUser, Content: prompt},
		},
	}

	requestBody, err := json.Marshal(chatReq)
	if err != nil {
		return "", NewProtocolError(0, "failed to marshal request", err.Error(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint.ChatURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", NewTransportError("create_request", "failed to create HTTP request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if p.endpoint.APIKey != "" {
		httpReq.Header.Set("Authorization", p.endpoint.APIKey)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", NewTransportError("http_request", "failed to make HTTP request", err)
	}
	defer httpResp.Body.Close()

	responseBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", NewTransportError("read_response", "failed to read response body", err)
	}

	content, err := parseChatResponse(httpResp.StatusCode, responseBody)
	if err != nil {
		p.logger.Warn("Invalid chat model response",
			zap.Int("status", httpResp.StatusCode),
			zap.Error(err))
		return "", err
	}

	p.logger.Debug("Chat model replied", zap.Int("content_length", len(content)))
	return content, nil
}

// GetModelInfo returns metadata about the configured model
func (p *ChatProvider) GetModelInfo() ModelInfo {
	return ModelInfo{
		Name:     p.endpoint.Model,
		Endpoint: p.endpoint.ChatURL,
	}
}

// parseChatResponse walks the choices[0].message.content envelope.
// Non-2xx statuses are reported on the ProtocolError.
func parseChatResponse(statusCode int, body []byte) (string, error) {
	status := 0
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		status = statusCode
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", NewProtocolError(status, "response body is not valid JSON", truncate(string(body), 512), err)
	}

	if len(chatResp.Choices) == 0 {
		return "", NewProtocolError(status, "invalid model response: choices missing or empty", truncate(string(body), 512), nil)
	}

	message := chatResp.Choices[0].Message
	if message == nil {
		return "", NewProtocolError(status, "invalid model response: message missing", truncate(string(body), 512), nil)
	}

	return message.Content, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
