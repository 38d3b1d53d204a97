package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
)

// completeEnvironments completes environment names for --env flags from the
// documents present under deploy/config.
func completeEnvironments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	layout, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	envs, err := layout.Environments()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, env := range envs {
		if strings.HasPrefix(env, toComplete) {
			names = append(names, env)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}
