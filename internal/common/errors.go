package common

import (
	"errors"
	"fmt"
)

// Error codes shared across packages
const (
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
)

// CodedError is implemented by every typed error in the service
type CodedError interface {
	error
	Code() string    // Error code for categorization
	Message() string // Human-readable error message
	Temporary() bool // Whether the error is temporary and retryable
}

// InvalidArgumentError represents a caller-supplied input that violates a precondition
type InvalidArgumentError struct {
	Field      string `json:"field"`
	ErrMessage string `json:"error_message"`
}

func (e InvalidArgumentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid argument: %s", e.ErrMessage)
	}
	return fmt.Sprintf("invalid argument '%s': %s", e.Field, e.ErrMessage)
}

func (e InvalidArgumentError) Code() string {
	return ErrCodeInvalidArgument
}

func (e InvalidArgumentError) Message() string {
	return e.ErrMessage
}

func (e InvalidArgumentError) Temporary() bool {
	return false
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(field, message string) InvalidArgumentError {
	return InvalidArgumentError{
		Field:      field,
		ErrMessage: message,
	}
}

// IsInvalidArgument reports whether err is, or wraps, an InvalidArgumentError
func IsInvalidArgument(err error) bool {
	var target InvalidArgumentError
	return errors.As(err, &target)
}

// ErrorCode returns the code of a CodedError anywhere in err's chain, or "" if none
func ErrorCode(err error) string {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
