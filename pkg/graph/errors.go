package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrInvalidIndex = errors.New("invalid node index")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "Identifier", "Outgoing")
	Entity string // Entity type (e.g., "node", "edge")
	Index  NodeIndex
	Cause  error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.Index, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// InvalidIndexError creates an error for a node index outside the registry.
func InvalidIndexError(op string, idx NodeIndex) error {
	return &GraphError{Op: op, Entity: "node", Index: idx, Cause: ErrInvalidIndex}
}

// IsNotFound returns true if the error is a not found or invalid index error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrInvalidIndex)
}
