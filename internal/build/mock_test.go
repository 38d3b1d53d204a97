package build

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
)

// Common test errors.
var (
	errMockBuild = errors.New("mock: image build failed")
	errMockPush  = errors.New("mock: image push failed")
)

// MockBuildAPI is a mock implementation of BuildAPI for testing.
type MockBuildAPI struct {
	// Function overrides for each method
	ImageBuildFunc func(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)
	ImagePushFunc  func(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error)
	CloseFunc      func() error

	// Call tracking
	ImageBuildCalls int
	ImagePushCalls  int
	CloseCalls      int

	// Captured arguments
	BuildOptions types.ImageBuildOptions
	PushedRefs   []string
	PushOptions  image.PushOptions
}

// NewMockBuildAPI creates a new mock with default no-op implementations.
func NewMockBuildAPI() *MockBuildAPI {
	return &MockBuildAPI{
		ImageBuildFunc: func(_ context.Context, _ io.Reader, _ types.ImageBuildOptions) (types.ImageBuildResponse, error) {
			return types.ImageBuildResponse{
				Body: io.NopCloser(bytes.NewBufferString(`{"stream":"Step 1/1 : FROM scratch"}`)),
			}, nil
		},
		ImagePushFunc: func(_ context.Context, _ string, _ image.PushOptions) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewBufferString(`{"status":"latest: digest: sha256:abc size: 1"}`)), nil
		},
		CloseFunc: func() error {
			return nil
		},
	}
}

func (m *MockBuildAPI) ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error) {
	m.ImageBuildCalls++
	m.BuildOptions = options
	return m.ImageBuildFunc(ctx, buildContext, options)
}

func (m *MockBuildAPI) ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error) {
	m.ImagePushCalls++
	m.PushedRefs = append(m.PushedRefs, ref)
	m.PushOptions = options
	return m.ImagePushFunc(ctx, ref, options)
}

func (m *MockBuildAPI) Close() error {
	m.CloseCalls++
	return m.CloseFunc()
}

// Verify MockBuildAPI implements the interface.
var _ BuildAPI = (*MockBuildAPI)(nil)
