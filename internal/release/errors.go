package release

import (
	"errors"
	"fmt"
)

// Fatal error classes. Every one of these aborts the remaining sequence
// immediately; none are retried internally.
var (
	// ErrJobDeploy indicates the target rejected the pre-deploy job replace.
	ErrJobDeploy = errors.New("job deploy failed")

	// ErrServiceDeploy indicates the target rejected the service replace.
	ErrServiceDeploy = errors.New("service deploy failed")

	// ErrJobExecution indicates the pre-deploy job ran and exited
	// non-successfully. The service publish must never run after this.
	ErrJobExecution = errors.New("job execution failed")
)

// StageError carries the stage name, resource name, and underlying error so
// operators can diagnose a failed invocation without re-running with
// elevated verbosity.
type StageError struct {
	// Stage is the pipeline stage that failed (preflight, migrate, publish).
	Stage string
	// Resource is the resource being acted on, if known.
	Resource string
	// Err is the underlying error, surfaced verbatim.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("stage %s: %s: %v", e.Stage, e.Resource, e.Err)
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// stageErr wraps err with stage context.
func stageErr(stage, resource string, err error) error {
	return &StageError{Stage: stage, Resource: resource, Err: err}
}
