package graph

import (
	"errors"
	"fmt"
)

// Error codes shared by the store backends and the analytics.
const (
	// ErrCodeEmptyCollection indicates an average or percentage over zero elements
	ErrCodeEmptyCollection = "EMPTY_COLLECTION"
	// ErrCodeDegenerateNormalization indicates a min-max rescale where min equals max
	ErrCodeDegenerateNormalization = "DEGENERATE_NORMALIZATION"
	// ErrCodeMissingEntity indicates a trend or user lookup found nothing
	ErrCodeMissingEntity = "MISSING_ENTITY"
	// ErrCodeStoreUnavailable indicates the graph store could not be reached
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// GraphError is a coded error carrying the entity it concerns, if any.
type GraphError struct {
	Code    string // Error code identifying the type of error
	Message string // Human readable error message
	Err     error  // Underlying error if any
	Entity  string // Trend key, username or node id the error concerns
}

// Error formats the code, message, entity (if present) and underlying error.
func (e *GraphError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Entity != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Entity)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *GraphError) Unwrap() error {
	return e.Err
}

// NewGraphError creates a new GraphError with the given parameters.
func NewGraphError(code, message string, err error, entity string) *GraphError {
	return &GraphError{
		Code:    code,
		Message: message,
		Err:     err,
		Entity:  entity,
	}
}

// MissingEntity is shorthand for a MISSING_ENTITY error about entity.
func MissingEntity(kind, entity string) *GraphError {
	return NewGraphError(ErrCodeMissingEntity, kind+" not found", nil, entity)
}

// StoreUnavailable wraps a connectivity failure.
func StoreUnavailable(message string, err error) *GraphError {
	return NewGraphError(ErrCodeStoreUnavailable, message, err, "")
}

// IsGraphError reports whether err, or anything it wraps, is a GraphError
// with the given code.
func IsGraphError(err error, code string) bool {
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge.Code == code
	}
	return false
}
