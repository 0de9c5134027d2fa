package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Catalog errors
	ErrUnknownCategory = errors.New("unknown category")
	ErrProductNotFound = errors.New("product not found")

	// Filter errors
	ErrInvalidFilter = errors.New("invalid filter")
)

// ValidationError reports a malformed or out-of-range request parameter.
// It is raised before any query runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidFilter) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidFilter
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// QueryExecutionError wraps a store failure while running a catalog statement.
// Callers see a generic message; the wrapped cause is for server-side logs.
type QueryExecutionError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *QueryExecutionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("catalog query %s timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("catalog query %s failed: %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// NewQueryExecutionError wraps err for op.
func NewQueryExecutionError(op string, timeout bool, err error) *QueryExecutionError {
	return &QueryExecutionError{Op: op, Timeout: timeout, Err: err}
}
