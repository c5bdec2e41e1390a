package llm

import (
	"strings"
)

// ModelEndpoint describes how to reach the chat-completion service
type ModelEndpoint struct {
	ChatURL string `json:"chat_url"`
	APIKey  string `json:"-"`
	Model   string `json:"model"`
}

// Validate checks that the endpoint can be called
func (e ModelEndpoint) Validate() error {
	if strings.TrimSpace(e.ChatURL) == "" {
		return NewConfigurationError("chat_url", "chat endpoint URL is required", "set llm.api_endpoint")
	}
	if strings.TrimSpace(e.Model) == "" {
		return NewConfigurationError("model", "model name is required", "set llm.model")
	}
	return nil
}

// ChatRequest represents the request body sent to the chat endpoint
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatMessage represents a single chat message
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse represents the response envelope of the chat endpoint.
// Pointers distinguish a missing field from an empty one.
type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// ChatChoice represents one completion choice
type ChatChoice struct {
	Message *ChatMessage `json:"message"`
}

// Message roles
const (
	RoleUser = "user"
)

// ModelInfo contains metadata about the configured model
type ModelInfo struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}
