package release

import (
	"context"
	"time"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/target"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// Pipeline sequences the release stages: pre-flight environment
// resolution, the optional blocking migration job, and the service
// publish. Each step is gated on the previous succeeding; no step is
// retried. Retry, if any, is the invoking CI trigger's responsibility.
type Pipeline struct {
	layout   *config.Layout
	runtime  target.Runtime
	renderer ManifestRenderer
	recorder OutcomeRecorder
}

// NewPipeline creates a Pipeline for the given project layout.
func NewPipeline(layout *config.Layout, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		layout:   layout,
		renderer: manifest.NewRenderer(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithRuntime sets the deployment target runtime.
func WithRuntime(rt target.Runtime) PipelineOption {
	return func(p *Pipeline) {
		p.runtime = rt
	}
}

// WithRenderer sets the manifest renderer.
func WithRenderer(r ManifestRenderer) PipelineOption {
	return func(p *Pipeline) {
		p.renderer = r
	}
}

// WithRecorder sets the release history recorder.
func WithRecorder(rec OutcomeRecorder) PipelineOption {
	return func(p *Pipeline) {
		p.recorder = rec
	}
}

// Run executes one deployment invocation. overrides are the runtime
// configuration overrides (--set flags), applied as the highest layer.
func (p *Pipeline) Run(ctx context.Context, req Request, overrides map[string]any) (*Outcome, error) {
	startTime := time.Now()

	ui.Header("=== Deploying to %s ===", req.Environment)

	// Step 1: pre-flight configuration resolution. A missing environment
	// document fails here, before any external mutation is attempted.
	ui.Step(1, "Resolving configuration for %s", req.Environment)
	resolved, err := config.ResolveEnvironment(ctx, p.layout, req.Environment, overrides)
	if err != nil {
		return nil, stageErr("preflight", req.Environment, err)
	}

	data := manifest.Data(resolved, map[string]any{
		"image_url":       req.ImageURL,
		"commit_sha":      req.CommitSHA,
		"service_account": req.ServiceAccount,
		"region":          req.Region,
		"environment":     req.Environment,
	})

	// Step 2: optional pre-deploy job, run to completion. A failed job
	// aborts the invocation; the service publish must not run.
	if req.RunMigration {
		ui.Step(2, "Running pre-deploy job")
		runner := NewJobRunner(p.runtime, p.renderer, p.layout.JobTemplatePath())
		if _, err := runner.Run(ctx, data); err != nil {
			return nil, err
		}
	} else {
		ui.Step(2, "Pre-deploy job skipped")
	}

	// Step 3: publish the service.
	ui.Step(3, "Publishing service")
	publisher := NewPublisher(p.runtime, p.renderer, p.layout.ServiceTemplatePath())
	endpoint, err := publisher.Publish(ctx, data)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		ServiceEndpoint: endpoint,
		ImageURL:        req.ImageURL,
		CommitSHA:       req.CommitSHA,
		Environment:     req.Environment,
	}

	// Recording is best-effort and never changes the deployment result.
	if p.recorder != nil {
		if name, err := p.recorder.Record(*outcome); err != nil {
			ui.Warning("Could not record release: %v", err)
		} else {
			ui.Info("Release recorded: %s", name)
		}
	}

	duration := time.Since(startTime)
	ui.Success("=== Deployed %s in %s ===", req.Environment, duration.Round(time.Second))

	return outcome, nil
}
