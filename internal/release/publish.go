package release

import (
	"context"
	"fmt"

	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/target"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// Publisher renders and idempotently applies the service manifest, then
// reports the resulting externally reachable endpoint.
type Publisher struct {
	runtime      target.Runtime
	renderer     ManifestRenderer
	templatePath string
}

// NewPublisher creates a Publisher.
func NewPublisher(runtime target.Runtime, renderer ManifestRenderer, templatePath string) *Publisher {
	return &Publisher{
		runtime:      runtime,
		renderer:     renderer,
		templatePath: templatePath,
	}
}

// Publish renders the service manifest and performs a full idempotent
// replace: the entire declarative spec is overwritten atomically, so two
// consecutive publishes with identical input produce no observable change.
// The endpoint read after a successful replace is best-effort; its failure
// is a warning, not a deployment failure.
func (p *Publisher) Publish(ctx context.Context, data map[string]any) (string, error) {
	rendered, err := p.renderer.Render(p.templatePath, data)
	if err != nil {
		return "", stageErr("publish", p.templatePath, err)
	}

	doc, err := manifest.Parse(rendered)
	if err != nil {
		return "", stageErr("publish", p.templatePath, fmt.Errorf("%w: %v", manifest.ErrRender, err))
	}

	serviceName := doc.Name()
	ui.Info("Replacing service %s...", serviceName)

	if err := p.runtime.Replace(ctx, target.KindService, doc); err != nil {
		return "", stageErr("publish", serviceName, fmt.Errorf("%w: %v", ErrServiceDeploy, err))
	}
	ui.Success("Service %s replaced", serviceName)

	endpoint, err := p.runtime.Describe(ctx, serviceName)
	if err != nil {
		// The replace already succeeded; a failed endpoint read does not
		// change the outcome.
		ui.Warning("Could not read endpoint for %s: %v", serviceName, err)
		return "", nil
	}

	return endpoint, nil
}
