// Package query selects records out of decoded documents with jq expressions.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// ErrInvalidExpression is returned when a selector does not parse or compile.
var ErrInvalidExpression = errors.New("invalid jq expression")

// Selector is a compiled jq expression whose outputs become records.
type Selector struct {
	expr string
	code *gojq.Code
}

// Compile parses and compiles a jq expression once for reuse across documents.
func Compile(expression string) (*Selector, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w at position %d: %v", ErrInvalidExpression, parseErr.Offset, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compile: %v", ErrInvalidExpression, err)
	}

	return &Selector{expr: expression, code: code}, nil
}

// String returns the source expression.
func (s *Selector) String() string {
	return s.expr
}

// Result contains the values emitted for one input.
type Result struct {
	Values []any    // Emitted values, nulls included
	Errors []string // Runtime errors, deduplicated
}

// Select runs the selector against input. Values are returned in emission
// order; runtime errors do not stop the iteration. maxResults <= 0 means no limit.
func (s *Selector) Select(ctx context.Context, input any, label string, maxResults int) *Result {
	result := &Result{
		Values: make([]any, 0),
		Errors: make([]string, 0),
	}
	seenErrors := make(map[string]bool)

	iter := s.code.RunWithContext(ctx, input)
	for {
		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}

		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
				break
			}
			msg := formatJQError(label, err)
			if !seenErrors[msg] {
				result.Errors = append(result.Errors, msg)
				seenErrors[msg] = true
			}
			continue
		}

		result.Values = append(result.Values, v)
	}

	return result
}

// formatJQError creates a helpful error message for JQ execution errors.
// It adds contextual hints to help users fix common issues.
//
// Runtime jq errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so string matching is used for the hints.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}
