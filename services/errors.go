package services

import (
	"errors"
	"fmt"
)

// ErrNotFound covers any referenced food/plan/template/entity that is
// absent. Controllers map it to 404; the failing operation aborts, the
// rest of the session is unaffected.
var ErrNotFound = errors.New("not found")

// ValidationError is raised before any external call is made, so a
// failed validation never leaves a partial effect.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExternalServiceError wraps a failed catalog or store call. Multi-step
// sequences stop at the first one and do not roll back applied steps.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
