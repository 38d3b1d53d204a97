// Package cmd provides the CLI commands for stevedore.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stevedore",
	Short: "Two-stage container deployments for Cloud Run",
	Long: `stevedore - two-stage container deployments

A CI-friendly deploy tool: build and push a container artifact, then
promote it into a target environment with layered configuration, an
optional blocking pre-deploy job, and an idempotent service replace.

BUILD STAGE
  build                 Build and push the container artifact
    --tag, -t           Explicit artifact tag (default: commit sha)
    --push              Push after building (default true)

DEPLOY STAGE
  deploy                Deploy an artifact into an environment
    --env, -e           Target environment (required)
    --image, -i         Artifact reference to deploy (required)
    --migrate, -m       Run the pre-deploy job first
    --set               Override a config value (key=value, repeatable)

PROJECT
  init                  Scaffold the deploy/ directory
  render                Render manifests without deploying
  log [n]               Show release history
  doctor                Pre-flight checks for binaries and layout
  update                Update stevedore to the latest version`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("stevedore version {{.Version}}\n")
}
