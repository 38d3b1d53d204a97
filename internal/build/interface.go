// Package build produces and pushes the container artifact for stage one.
package build

import (
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
)

// BuildAPI defines the interface for image build operations.
// This interface enables mocking for unit tests without requiring a running
// Docker daemon.
type BuildAPI interface {
	// ImageBuild builds an image from a tar build context.
	ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)

	// ImagePush pushes an image to its registry.
	ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error)

	// Close closes the client connection.
	Close() error
}

// Verify that the Docker SDK client implements our interface.
// This ensures compile-time verification that our interface stays in sync.
var _ BuildAPI = (buildAPIAdapter)(nil)

// buildAPIAdapter adapts the Docker SDK client to our interface.
// The SDK client methods have the same signatures, so this is a type alias.
type buildAPIAdapter interface {
	ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)
	ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error)
	Close() error
}
