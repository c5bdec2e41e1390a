package llm

import (
	"errors"
	"fmt"

	"text2sql-api/internal/common"
)

// LLMError defines the interface for LLM-specific errors
type LLMError = common.CodedError

// Error codes
const (
	ErrorCodeTransport        = "TRANSPORT_ERROR"
	ErrorCodeProtocol         = "PROTOCOL_ERROR"
	ErrorCodeExtraction       = "EXTRACTION_ERROR"
	ErrorCodeGenerationFailed = "GENERATION_FAILED"
	ErrorCodeConfiguration    = "CONFIGURATION_ERROR"
)

// TransportError represents a failure to reach the chat endpoint
type TransportError struct {
	Operation string `json:"operation"`
	ErrorMsg  string `json:"error_message"`
	Wrapped   error  `json:"-"`
}

func (e TransportError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("transport error during %s: %s (wrapped: %v)", e.Operation, e.ErrorMsg, e.Wrapped)
	}
	return fmt.Sprintf("transport error during %s: %s", e.Operation, e.ErrorMsg)
}

func (e TransportError) Code() string {
	return ErrorCodeTransport
}

func (e TransportError) Message() string {
	return e.ErrorMsg
}

func (e TransportError) Temporary() bool {
	return true
}

func (e TransportError) Unwrap() error {
	return e.Wrapped
}

// ProtocolError represents a reachable endpoint whose response does not match the expected envelope
type ProtocolError struct {
	HTTPStatus int    `json:"http_status,omitempty"`
	ErrorMsg   string `json:"error_message"`
	Details    string `json:"details"`
	Wrapped    error  `json:"-"`
}

func (e ProtocolError) Error() string {
	msg := e.ErrorMsg
	if e.HTTPStatus != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.HTTPStatus)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("protocol error: %s: %v", msg, e.Wrapped)
	}
	return fmt.Sprintf("protocol error: %s", msg)
}

func (e ProtocolError) Code() string {
	return ErrorCodeProtocol
}

func (e ProtocolError) Message() string {
	return e.ErrorMsg
}

func (e ProtocolError) Temporary() bool {
	return true
}

func (e ProtocolError) Unwrap() error {
	return e.Wrapped
}

// ExtractionError represents model output that could not be safely turned into SQL
type ExtractionError struct {
	ErrorMsg string `json:"error_message"`
	Wrapped  error  `json:"-"`
}

func (e ExtractionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("SQL extraction failed: %s: %v", e.ErrorMsg, e.Wrapped)
	}
	return fmt.Sprintf("SQL extraction failed: %s", e.ErrorMsg)
}

func (e ExtractionError) Code() string {
	return ErrorCodeExtraction
}

func (e ExtractionError) Message() string {
	return e.ErrorMsg
}

// Temporary is false: the same reply fails the same way. The retry loop still
// retries it unless fail-fast is enabled.
func (e ExtractionError) Temporary() bool {
	return false
}

func (e ExtractionError) Unwrap() error {
	return e.Wrapped
}

// GenerationFailedError is returned once every attempt has failed
type GenerationFailedError struct {
	Attempts int   `json:"attempts"`
	Retries  int   `json:"retries"`
	Cause    error `json:"-"`
}

func (e GenerationFailedError) Error() string {
	return fmt.Sprintf("SQL generation failed after %d retries: %v", e.Retries, e.Cause)
}

func (e GenerationFailedError) Code() string {
	return ErrorCodeGenerationFailed
}

func (e GenerationFailedError) Message() string {
	return fmt.Sprintf("request failed, retried %d times", e.Retries)
}

func (e GenerationFailedError) Temporary() bool {
	return false
}

func (e GenerationFailedError) Unwrap() error {
	return e.Cause
}

// ConfigurationError represents invalid configuration
type ConfigurationError struct {
	Field    string `json:"field"`
	ErrorMsg string `json:"error_message"`
	Details  string `json:"details"`
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field '%s': %s", e.Field, e.ErrorMsg)
}

func (e ConfigurationError) Code() string {
	return ErrorCodeConfiguration
}

func (e ConfigurationError) Message() string {
	return e.ErrorMsg
}

func (e ConfigurationError) Temporary() bool {
	return false
}

// Error creation helpers

// NewTransportError creates a new transport error
func NewTransportError(operation, message string, wrapped error) TransportError {
	return TransportError{
		Operation: operation,
		ErrorMsg:  message,
		Wrapped:   wrapped,
	}
}

// NewProtocolError creates a new protocol error
func NewProtocolError(httpStatus int, message, details string, wrapped error) ProtocolError {
	return ProtocolError{
		HTTPStatus: httpStatus,
		ErrorMsg:   message,
		Details:    details,
		Wrapped:    wrapped,
	}
}

// NewExtractionError creates a new extraction error
func NewExtractionError(message string, wrapped error) ExtractionError {
	return ExtractionError{
		ErrorMsg: message,
		Wrapped:  wrapped,
	}
}

// NewGenerationFailedError creates a terminal error after attempts tries
func NewGenerationFailedError(attempts int, cause error) GenerationFailedError {
	retries := attempts - 1
	if retries < 0 {
		retries = 0
	}
	return GenerationFailedError{
		Attempts: attempts,
		Retries:  retries,
		Cause:    cause,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, message, details string) ConfigurationError {
	return ConfigurationError{
		Field:    field,
		ErrorMsg: message,
		Details:  details,
	}
}

// Error classification helpers

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var llmErr LLMError
	if errors.As(err, &llmErr) {
		return llmErr.Temporary()
	}
	return false
}

// IsExtractionError reports whether err is, or wraps, an ExtractionError
func IsExtractionError(err error) bool {
	var target ExtractionError
	return errors.As(err, &target)
}

// AsGenerationFailed returns the GenerationFailedError in err's chain, if any
func AsGenerationFailed(err error) (GenerationFailedError, bool) {
	var target GenerationFailedError
	ok := errors.As(err, &target)
	return target, ok
}

// ErrorKind returns a short label for metrics and logs
func ErrorKind(err error) string {
	switch common.ErrorCode(err) {
	case ErrorCodeTransport:
		return "transport_error"
	case ErrorCodeProtocol:
		return "protocol_error"
	case ErrorCodeExtraction:
		return "extraction_error"
	case "":
		if err == nil {
			return "success"
		}
		return "unknown_error"
	default:
		return "other_error"
	}
}
