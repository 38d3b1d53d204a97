package release

import (
	"context"
	"fmt"

	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/target"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// JobState tracks the pre-deploy job runner through its lifecycle.
type JobState string

const (
	// JobIdle is the initial state; also terminal when the job is skipped.
	JobIdle JobState = "idle"
	// JobRendered means the manifest was produced.
	JobRendered JobState = "rendered"
	// JobSubmitted means the manifest replace was accepted.
	JobSubmitted JobState = "submitted"
	// JobAwaiting means the runner is blocked on the job's terminal state.
	JobAwaiting JobState = "awaiting"
	// JobSucceeded and JobFailed are the terminal states.
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// JobRunner renders, submits, and synchronously awaits completion of the
// one-shot pre-deploy job. The wait is deliberate: the service publisher
// must never run against data a migration has not finished writing.
type JobRunner struct {
	runtime      target.Runtime
	renderer     ManifestRenderer
	templatePath string
	state        JobState
}

// NewJobRunner creates a runner in the Idle state.
func NewJobRunner(runtime target.Runtime, renderer ManifestRenderer, templatePath string) *JobRunner {
	return &JobRunner{
		runtime:      runtime,
		renderer:     renderer,
		templatePath: templatePath,
		state:        JobIdle,
	}
}

// State returns the runner's current state.
func (r *JobRunner) State() JobState {
	return r.state
}

// Run drives the job to a terminal state: render, idempotent replace,
// then a blocking execute. Any failure is fatal to the invocation and
// leaves the runner in JobFailed.
func (r *JobRunner) Run(ctx context.Context, data map[string]any) (JobResult, error) {
	result := JobResult{}

	rendered, err := r.renderer.Render(r.templatePath, data)
	if err != nil {
		r.state = JobFailed
		return result, stageErr("migrate", r.templatePath, err)
	}

	doc, err := manifest.Parse(rendered)
	if err != nil {
		r.state = JobFailed
		return result, stageErr("migrate", r.templatePath, fmt.Errorf("%w: %v", manifest.ErrRender, err))
	}
	r.state = JobRendered

	jobName := doc.Name()
	ui.Info("Submitting pre-deploy job %s...", jobName)

	if err := r.runtime.Replace(ctx, target.KindJob, doc); err != nil {
		r.state = JobFailed
		return result, stageErr("migrate", jobName, fmt.Errorf("%w: %v", ErrJobDeploy, err))
	}
	r.state = JobSubmitted
	result.Submitted = true

	ui.Info("Waiting for job %s to complete...", jobName)
	r.state = JobAwaiting

	if err := r.runtime.Execute(ctx, jobName); err != nil {
		r.state = JobFailed
		result.Completed = true
		result.ExitStatus = err.Error()
		return result, stageErr("migrate", jobName, fmt.Errorf("%w: %v", ErrJobExecution, err))
	}

	r.state = JobSucceeded
	result.Completed = true
	result.ExitStatus = "success"

	ui.Success("Pre-deploy job %s completed", jobName)
	return result, nil
}

// SkippedResult is the vacuously successful result for an invocation with
// RunMigration=false; the runner stays Idle, which is terminal.
func SkippedResult() JobResult {
	return JobResult{Submitted: false, Completed: false, ExitStatus: "skipped"}
}
