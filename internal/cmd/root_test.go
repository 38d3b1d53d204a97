package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp(t *testing.T) {
	out, err := executeCmd(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "stevedore")
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "deploy")
}

func TestRootVersion(t *testing.T) {
	out, err := executeCmd(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "stevedore version "+version)
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCmd(t, "not-a-command")
	require.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	expected := []string{"build", "deploy", "render", "doctor", "log", "init", "update"}

	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %s should be registered", name)
	}
}

func TestDeployRequiredFlags(t *testing.T) {
	_, err := executeCmd(t, "deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestBuildRequiredFlags(t *testing.T) {
	_, err := executeCmd(t, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
