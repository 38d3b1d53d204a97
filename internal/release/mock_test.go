package release

import (
	"context"
	"errors"

	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/target"
)

// Common test errors.
var (
	errMockReplace  = errors.New("mock: replace failed")
	errMockExecute  = errors.New("mock: execute failed")
	errMockDescribe = errors.New("mock: describe failed")
	errMockRender   = errors.New("mock: render failed")
	errMockRecord   = errors.New("mock: record failed")
)

// mockRuntime is a mock implementation of target.Runtime for testing.
type mockRuntime struct {
	// Function overrides for each method
	ReplaceFunc  func(ctx context.Context, kind string, doc manifest.Document) error
	ExecuteFunc  func(ctx context.Context, jobName string) error
	DescribeFunc func(ctx context.Context, serviceName string) (string, error)

	// Call tracking
	ReplaceCalls  int
	ExecuteCalls  int
	DescribeCalls int

	// Kinds passed to Replace, in order
	ReplacedKinds []string
}

// newMockRuntime creates a new mock with default no-op implementations.
func newMockRuntime() *mockRuntime {
	return &mockRuntime{
		ReplaceFunc: func(_ context.Context, _ string, _ manifest.Document) error {
			return nil
		},
		ExecuteFunc: func(_ context.Context, _ string) error {
			return nil
		},
		DescribeFunc: func(_ context.Context, _ string) (string, error) {
			return "https://app-test.example.run.app", nil
		},
	}
}

func (m *mockRuntime) Replace(ctx context.Context, kind string, doc manifest.Document) error {
	m.ReplaceCalls++
	m.ReplacedKinds = append(m.ReplacedKinds, kind)
	return m.ReplaceFunc(ctx, kind, doc)
}

func (m *mockRuntime) Execute(ctx context.Context, jobName string) error {
	m.ExecuteCalls++
	return m.ExecuteFunc(ctx, jobName)
}

func (m *mockRuntime) Describe(ctx context.Context, serviceName string) (string, error) {
	m.DescribeCalls++
	return m.DescribeFunc(ctx, serviceName)
}

// Verify mockRuntime implements the interface.
var _ target.Runtime = (*mockRuntime)(nil)

// mockRenderer is a mock implementation of ManifestRenderer for testing.
type mockRenderer struct {
	RenderFunc  func(templatePath string, data map[string]any) (string, error)
	RenderCalls int
}

// newMockRenderer returns a renderer that produces a minimal manifest
// named after the template path's base semantics.
func newMockRenderer(rendered string) *mockRenderer {
	return &mockRenderer{
		RenderFunc: func(_ string, _ map[string]any) (string, error) {
			return rendered, nil
		},
	}
}

func (m *mockRenderer) Render(templatePath string, data map[string]any) (string, error) {
	m.RenderCalls++
	return m.RenderFunc(templatePath, data)
}

var _ ManifestRenderer = (*mockRenderer)(nil)

// mockRecorder is a mock implementation of OutcomeRecorder for testing.
type mockRecorder struct {
	RecordFunc  func(outcome Outcome) (string, error)
	RecordCalls int
	Recorded    []Outcome
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{
		RecordFunc: func(_ Outcome) (string, error) {
			return "release-test.yaml", nil
		},
	}
}

func (m *mockRecorder) Record(outcome Outcome) (string, error) {
	m.RecordCalls++
	m.Recorded = append(m.Recorded, outcome)
	return m.RecordFunc(outcome)
}

var _ OutcomeRecorder = (*mockRecorder)(nil)
