package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitScaffoldsLayout(t *testing.T) {
	initForce = false
	dir := t.TempDir()

	_, err := executeCmd(t, "init", dir)
	require.NoError(t, err)

	for _, path := range []string{
		"deploy/config/base.yaml",
		"deploy/config/staging.yaml",
		"deploy/config/production.yaml",
		"deploy/templates/service.yaml.tmpl",
		"deploy/templates/job.yaml.tmpl",
	} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path)))
		assert.NoError(t, err, "%s should exist", path)
	}

	// History directory is created ahead of the first release.
	info, err := os.Stat(filepath.Join(dir, "deploy", ".stevedore", "releases"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitPreservesExistingFiles(t *testing.T) {
	initForce = false
	dir := t.TempDir()

	configDir := filepath.Join(dir, "deploy", "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	custom := []byte("app_name: custom\n")
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "base.yaml"), custom, 0644))

	_, err := executeCmd(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(configDir, "base.yaml"))
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestInitForceOverwrites(t *testing.T) {
	dir := t.TempDir()

	configDir := filepath.Join(dir, "deploy", "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "base.yaml"), []byte("app_name: custom\n"), 0644))

	_, err := executeCmd(t, "init", "--force", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(configDir, "base.yaml"))
	require.NoError(t, err)
	assert.NotEqual(t, "app_name: custom\n", string(data))
}
