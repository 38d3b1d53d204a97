package target

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cameronsjo/stevedore/internal/manifest"
)

// Target operation timeouts. Execute deliberately has none: the blocking
// wait's only backstop is the invoking CI platform's wall clock.
const (
	ReplaceTimeout  = 5 * time.Minute
	DescribeTimeout = 30 * time.Second
)

// GcloudRuntime drives the deployment target through the gcloud CLI.
type GcloudRuntime struct {
	// Project is the target project identifier.
	Project string
	// Region is the target region.
	Region string
}

// NewGcloudRuntime creates a runtime scoped to one project and region.
func NewGcloudRuntime(project, region string) *GcloudRuntime {
	return &GcloudRuntime{Project: project, Region: region}
}

// Replace writes the manifest to a temporary file and applies it as a full
// replace of the named resource. Uses ReplaceTimeout if the parent context
// has no deadline.
func (g *GcloudRuntime) Replace(ctx context.Context, kind string, doc manifest.Document) error {
	if kind != KindService && kind != KindJob {
		return fmt.Errorf("unknown resource kind %q", kind)
	}

	data, err := doc.YAML()
	if err != nil {
		return err
	}

	file, err := os.CreateTemp("", "stevedore-manifest-*.yaml")
	if err != nil {
		return fmt.Errorf("create manifest file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write manifest file: %w", err)
	}
	file.Close()

	// Apply timeout if context doesn't have one
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ReplaceTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "gcloud", g.replaceArgs(kind, path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%s replace timed out after %v", kind, ReplaceTimeout)
		}
		return fmt.Errorf("%s replace failed: %w: %s", kind, err, stderr.String())
	}
	return nil
}

// Execute invokes the named job and blocks until it reaches a terminal
// state. No deadline is applied here: the migration must be allowed to
// finish, and the surrounding CI job timeout is the only backstop.
func (g *GcloudRuntime) Execute(ctx context.Context, jobName string) error {
	cmd := exec.CommandContext(ctx, "gcloud", g.executeArgs(jobName)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("job %s execution failed: %w: %s", jobName, err, stderr.String())
	}
	return nil
}

// Describe returns the service's externally reachable URL. Uses
// DescribeTimeout if the parent context has no deadline.
func (g *GcloudRuntime) Describe(ctx context.Context, serviceName string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DescribeTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "gcloud", g.describeArgs(serviceName)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("service describe timed out after %v", DescribeTimeout)
		}
		return "", fmt.Errorf("service %s describe failed: %w: %s", serviceName, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (g *GcloudRuntime) replaceArgs(kind, manifestPath string) []string {
	args := []string{"run"}
	if kind == KindJob {
		args = append(args, "jobs")
	} else {
		args = append(args, "services")
	}
	args = append(args, "replace", manifestPath)
	return append(args, g.scopeArgs()...)
}

func (g *GcloudRuntime) executeArgs(jobName string) []string {
	args := []string{"run", "jobs", "execute", jobName, "--wait"}
	return append(args, g.scopeArgs()...)
}

func (g *GcloudRuntime) describeArgs(serviceName string) []string {
	args := []string{"run", "services", "describe", serviceName, "--format=value(status.url)"}
	return append(args, g.scopeArgs()...)
}

func (g *GcloudRuntime) scopeArgs() []string {
	args := []string{"--quiet"}
	if g.Project != "" {
		args = append(args, "--project="+g.Project)
	}
	if g.Region != "" {
		args = append(args, "--region="+g.Region)
	}
	return args
}
