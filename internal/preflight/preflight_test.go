package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/stevedore/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	t.Run("returns list of missing binaries", func(t *testing.T) {
		// This test verifies the function runs without error
		// Actual results depend on system configuration
		missing := CheckBinaries()
		for _, bin := range missing {
			assert.NotEmpty(t, bin.Name, "missing binary should have a name")
			assert.NotEmpty(t, bin.InstallHint, "missing binary should have an install hint")
		}
	})
}

func TestCheckRequiredBinaries(t *testing.T) {
	t.Run("returns only required binaries that are missing", func(t *testing.T) {
		missing := CheckRequiredBinaries()
		for _, bin := range missing {
			assert.True(t, bin.Required, "should only return required binaries")
		}
	})
}

func TestCheckOptionalBinaries(t *testing.T) {
	t.Run("returns only optional binaries that are missing", func(t *testing.T) {
		missing := CheckOptionalBinaries()
		for _, bin := range missing {
			assert.False(t, bin.Required, "should only return optional binaries")
		}
	})
}

func TestCheckAll(t *testing.T) {
	warnings, errors := CheckAll()
	for _, w := range warnings {
		assert.Contains(t, w, ":", "warning should contain install hint")
	}
	for _, e := range errors {
		assert.Contains(t, e, ":", "error should contain install hint")
	}
}

func TestIsBinaryAvailable(t *testing.T) {
	// `ls` exists on any system these tests run on; a random name does not.
	assert.True(t, IsBinaryAvailable("ls"))
	assert.False(t, IsBinaryAvailable("definitely-not-a-real-binary-xyz"))
}

func TestCheckLayout(t *testing.T) {
	root := t.TempDir()
	layout := config.NewLayout(root)

	t.Run("missing config directory", func(t *testing.T) {
		problems := CheckLayout(layout)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0].String(), "stevedore init")
	})

	require.NoError(t, os.MkdirAll(layout.ConfigDir(), 0755))
	require.NoError(t, os.MkdirAll(layout.TemplatesDir(), 0755))

	t.Run("no environments or templates", func(t *testing.T) {
		problems := CheckLayout(layout)
		assert.Len(t, problems, 3)
	})

	require.NoError(t, os.WriteFile(filepath.Join(layout.ConfigDir(), "production.yaml"), []byte("memory: 1Gi\n"), 0644))
	require.NoError(t, os.WriteFile(layout.ServiceTemplatePath(), []byte("kind: Service\n"), 0644))
	require.NoError(t, os.WriteFile(layout.JobTemplatePath(), []byte("kind: Job\n"), 0644))

	t.Run("complete layout", func(t *testing.T) {
		assert.Empty(t, CheckLayout(layout))
	})
}
