// Package target provides the deployment target runtime surface: full
// idempotent resource replace, blocking one-shot job execution, and
// endpoint lookup.
package target

import (
	"context"

	"github.com/cameronsjo/stevedore/internal/manifest"
)

// Resource kinds accepted by Replace.
const (
	KindService = "service"
	KindJob     = "job"
)

// Runtime defines the deployment target operations the orchestrator
// consumes. This interface enables mocking for unit tests without a live
// target project.
type Runtime interface {
	// Replace applies a full replace of the named resource: the entire
	// declarative spec is overwritten atomically. Reapplying an identical
	// manifest is a no-op from the caller's perspective.
	Replace(ctx context.Context, kind string, doc manifest.Document) error

	// Execute invokes the named one-shot job and blocks until the runtime
	// reports a terminal state. A non-success terminal state is an error.
	Execute(ctx context.Context, jobName string) error

	// Describe returns the externally reachable address of the named
	// service. Best-effort: callers treat failure after a successful
	// replace as a warning, not a deployment failure.
	Describe(ctx context.Context, serviceName string) (string, error)
}

// Verify the gcloud implementation satisfies the interface.
var _ Runtime = (*GcloudRuntime)(nil)
