package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"text2sql-api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypes_CodesAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      string
		retryable bool
		kind      string
	}{
		{
			name:      "transport",
			err:       NewTransportError("http_request", "connection refused", errors.New("dial tcp")),
			code:      ErrorCodeTransport,
			retryable: true,
			kind:      "transport_error",
		},
		{
			name:      "protocol",
			err:       NewProtocolError(502, "invalid model response: choices missing or empty", "{}", nil),
			code:      ErrorCodeProtocol,
			retryable: true,
			kind:      "protocol_error",
		},
		{
			name: "extraction",
			err:  NewExtractionError("no code block found", nil),
			code: ErrorCodeExtraction,
			kind: "extraction_error",
		},
		{
			name: "configuration",
			err:  NewConfigurationError("model", "model name is required", ""),
			code: ErrorCodeConfiguration,
			kind: "other_error",
		},
		{
			name: "plain error",
			err:  context.Canceled,
			kind: "unknown_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, common.ErrorCode(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
			assert.Equal(t, tt.kind, ErrorKind(tt.err))
		})
	}

	assert.Equal(t, "success", ErrorKind(nil))
}

func TestProtocolError_Error(t *testing.T) {
	err := NewProtocolError(503, "response body is not valid JSON", "<html>", errors.New("invalid character '<'"))
	assert.Equal(t, "protocol error: response body is not valid JSON (HTTP 503): invalid character '<'", err.Error())

	err = NewProtocolError(0, "invalid model response: message missing", "", nil)
	assert.Equal(t, "protocol error: invalid model response: message missing", err.Error())
}

func TestGenerationFailedError(t *testing.T) {
	cause := NewExtractionError("no code block found", nil)
	err := NewGenerationFailedError(3, cause)

	assert.Equal(t, 3, err.Attempts)
	assert.Equal(t, 2, err.Retries)
	assert.Equal(t, "request failed, retried 2 times", err.Message())
	assert.Equal(t, ErrorCodeGenerationFailed, err.Code())
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsExtractionError(err))

	wrapped := fmt.Errorf("handler: %w", err)
	failure, ok := AsGenerationFailed(wrapped)
	require.True(t, ok)
	assert.Equal(t, 2, failure.Retries)

	_, ok = AsGenerationFailed(cause)
	assert.False(t, ok)

	assert.Equal(t, 0, NewGenerationFailedError(0, cause).Retries)
}
