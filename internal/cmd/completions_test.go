package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteEnvironments(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "deploy", "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	for _, name := range []string{"base.yaml", "staging.yaml", "production.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(configDir, name), []byte("memory: 1Gi\n"), 0644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { os.Chdir(wd) })

	names, directive := completeEnvironments(nil, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.ElementsMatch(t, []string{"staging", "production"}, names)

	names, _ = completeEnvironments(nil, nil, "stag")
	assert.Equal(t, []string{"staging"}, names)
}

func TestCompleteEnvironments_OutsideProject(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	_, directive := completeEnvironments(nil, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveError, directive)
}
