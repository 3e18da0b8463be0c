package core

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the failures an evaluation can produce.
type ErrorKind string

// All error kinds supported.
const (
	ValidationKind    ErrorKind = "validation"     // user-correctable input problem
	UnknownMetricKind ErrorKind = "unknown_metric" // score references a metric the catalog lacks
	ServerKind        ErrorKind = "server"         // anything else
)

// EvalError is the tagged error returned by evaluation and input validation.
type EvalError struct {
	Kind   ErrorKind
	Metric string // offending metric id, if any
	Msg    string
	Err    error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the underlying cause.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a user-correctable input problem.
func NewValidationError(metric, msg string) *EvalError {
	return &EvalError{Kind: ValidationKind, Metric: metric, Msg: msg}
}

// NewUnknownMetricError reports a metric id that is not in the catalog.
func NewUnknownMetricError(metric string) *EvalError {
	return &EvalError{Kind: UnknownMetricKind, Metric: metric, Msg: fmt.Sprintf("Unknown metric: %s", metric)}
}

// NewServerError wraps an unexpected failure.
func NewServerError(msg string, err error) *EvalError {
	return &EvalError{Kind: ServerKind, Msg: msg, Err: err}
}

// KindOf returns the kind of an error, treating untagged errors as server errors.
func KindOf(err error) ErrorKind {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Kind
	}
	return ServerKind
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return err != nil && KindOf(err) == ValidationKind
}

// IsUnknownMetric reports whether err is an unknown-metric error.
func IsUnknownMetric(err error) bool {
	return err != nil && KindOf(err) == UnknownMetricKind
}
