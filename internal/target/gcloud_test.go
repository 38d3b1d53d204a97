package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceArgs(t *testing.T) {
	g := NewGcloudRuntime("p1", "us-central1")

	tests := []struct {
		name string
		kind string
		want []string
	}{
		{
			name: "service replace",
			kind: KindService,
			want: []string{"run", "services", "replace", "/tmp/m.yaml", "--quiet", "--project=p1", "--region=us-central1"},
		},
		{
			name: "job replace",
			kind: KindJob,
			want: []string{"run", "jobs", "replace", "/tmp/m.yaml", "--quiet", "--project=p1", "--region=us-central1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.replaceArgs(tt.kind, "/tmp/m.yaml"))
		})
	}
}

func TestExecuteArgs_BlocksWithWait(t *testing.T) {
	g := NewGcloudRuntime("p1", "us-central1")

	args := g.executeArgs("migrate-db")
	assert.Contains(t, args, "--wait")
	assert.Equal(t, []string{"run", "jobs", "execute", "migrate-db", "--wait", "--quiet", "--project=p1", "--region=us-central1"}, args)
}

func TestDescribeArgs(t *testing.T) {
	g := NewGcloudRuntime("p1", "us-central1")

	args := g.describeArgs("api")
	assert.Equal(t, []string{"run", "services", "describe", "api", "--format=value(status.url)", "--quiet", "--project=p1", "--region=us-central1"}, args)
}

func TestScopeArgs_EmptyProjectAndRegion(t *testing.T) {
	g := NewGcloudRuntime("", "")
	assert.Equal(t, []string{"--quiet"}, g.scopeArgs())
}
