package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/typeprofile-mcp/internal/query"
	"github.com/usestring/typeprofile-mcp/pkg/decode"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeDepthExceeded = "DEPTH_EXCEEDED"
	ErrCodeDecodeError   = "DECODE_ERROR"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeInternal      = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapProfileError converts a decode or profiling error to a coded error.
// Errors that already carry a code pass through unchanged.
func WrapProfileError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}

	switch {
	case errors.Is(err, typeprofile.ErrDepthExceeded):
		coded = &CodedError{Code: ErrCodeDepthExceeded, Message: "input nests deeper than max_depth", Cause: err}
	case errors.Is(err, typeprofile.ErrTooManyRecords):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "too many records to profile in one request", Cause: err}
	case errors.Is(err, query.ErrInvalidExpression):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "invalid selector", Cause: err}
	case errors.Is(err, decode.ErrMalformed),
		errors.Is(err, decode.ErrNotSequence),
		errors.Is(err, decode.ErrUnsupportedContent):
		coded = &CodedError{Code: ErrCodeDecodeError, Message: "document could not be decoded into records", Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "profiling interrupted", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInternal, Message: "profiling failed", Cause: err}
	}

	slog.Warn("tool error",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
