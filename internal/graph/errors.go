package graph

import (
	"errors"
	"fmt"
)

// LinkError reports why an edge insertion was refused.
//
// All link errors are recoverable: the caller's request is refused, the edge
// is not created, and the closure table is left untouched. Storage failures
// are not LinkErrors; they surface as wrapped driver errors and roll back the
// enclosing transaction.
type LinkError struct {
	// Code identifies the rejection category.
	Code LinkErrorCode

	// Input and Output are the endpoints of the refused edge,
	// after normalization.
	Input  NodeID
	Output NodeID
}

// LinkErrorCode categorizes edge-insertion rejections.
type LinkErrorCode string

const (
	// ErrCodeSelfLoop indicates the edge would connect a node to itself.
	ErrCodeSelfLoop LinkErrorCode = "SELF_LOOP"

	// ErrCodeAlreadyLinked indicates a direct edge with the same endpoints
	// already exists.
	ErrCodeAlreadyLinked LinkErrorCode = "ALREADY_LINKED"

	// ErrCodeWouldCreateCycle indicates a path already runs from Output back
	// to Input, so the edge would close a directed cycle.
	ErrCodeWouldCreateCycle LinkErrorCode = "WOULD_CREATE_CYCLE"
)

// Error implements the error interface.
func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", e.Code, e.Input, e.Output)
}

// IsSelfLoop returns true if the error is a self-loop rejection.
// Uses errors.As to handle wrapped errors.
func IsSelfLoop(err error) bool {
	var le *LinkError
	return errors.As(err, &le) && le.Code == ErrCodeSelfLoop
}

// IsAlreadyLinked returns true if the error is a duplicate-edge rejection.
// Uses errors.As to handle wrapped errors.
func IsAlreadyLinked(err error) bool {
	var le *LinkError
	return errors.As(err, &le) && le.Code == ErrCodeAlreadyLinked
}

// IsCycleError returns true if the error is a cycle rejection.
// Uses errors.As to handle wrapped errors.
func IsCycleError(err error) bool {
	var le *LinkError
	return errors.As(err, &le) && le.Code == ErrCodeWouldCreateCycle
}

// NewSelfLoopError creates a LinkError for a self-loop rejection.
func NewSelfLoopError(input, output NodeID) *LinkError {
	return &LinkError{Code: ErrCodeSelfLoop, Input: input, Output: output}
}

// NewAlreadyLinkedError creates a LinkError for a duplicate direct edge.
func NewAlreadyLinkedError(input, output NodeID) *LinkError {
	return &LinkError{Code: ErrCodeAlreadyLinked, Input: input, Output: output}
}

// NewCycleError creates a LinkError for an edge that would close a cycle.
func NewCycleError(input, output NodeID) *LinkError {
	return &LinkError{Code: ErrCodeWouldCreateCycle, Input: input, Output: output}
}
