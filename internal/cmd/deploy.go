package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/artifact"
	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/history"
	"github.com/cameronsjo/stevedore/internal/preflight"
	"github.com/cameronsjo/stevedore/internal/release"
	"github.com/cameronsjo/stevedore/internal/target"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	deployEnv            string
	deployImage          string
	deployCommit         string
	deployMigrate        bool
	deployProject        string
	deployRegion         string
	deployServiceAccount string
	deploySet            []string
)

// deployCmd represents the deploy command.
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy an artifact into an environment",
	Long: `Promote a previously built artifact into a target environment.

Configuration is resolved by layering the environment document over the
base document, with --set overrides on top. With --migrate the pre-deploy
job runs first and blocks the service update until it completes; a failed
job aborts the deployment. The service manifest is applied as a full
replace, so re-running a deployment with identical inputs is safe.

Examples:
  stevedore deploy -e staging -i reg.example.com/p1/repo/acme/app:v1.2.3
  stevedore deploy -e production -i reg.example.com/p1/repo/acme/app/sha:abc123 --migrate
  stevedore deploy -e staging -i ... --set max_instances=25`,
	Run: runDeploy,
}

func init() {
	deployCmd.Flags().StringVarP(&deployEnv, "env", "e", "", "Target environment (required)")
	deployCmd.Flags().StringVarP(&deployImage, "image", "i", "", "Artifact reference to deploy (required)")
	deployCmd.Flags().StringVar(&deployCommit, "commit", "", "Commit sha recorded with the release (default: HEAD)")
	deployCmd.Flags().BoolVarP(&deployMigrate, "migrate", "m", false, "Run the pre-deploy job before the service update")
	deployCmd.Flags().StringVar(&deployProject, "project", "", "Target project identifier")
	deployCmd.Flags().StringVar(&deployRegion, "region", "", "Target region")
	deployCmd.Flags().StringVar(&deployServiceAccount, "service-account", "", "Runtime service account")
	deployCmd.Flags().StringArrayVar(&deploySet, "set", nil, "Override a config value (key=value, repeatable)")

	deployCmd.MarkFlagRequired("env")
	deployCmd.MarkFlagRequired("image")
	deployCmd.RegisterFlagCompletionFunc("env", completeEnvironments)

	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) {
	if missing := preflight.CheckRequiredBinaries(); len(missing) > 0 {
		for _, bin := range missing {
			ui.Error("Missing required binary %s. %s", bin.Name, bin.InstallHint)
		}
		os.Exit(1)
	}

	layout := loadLayout()

	overrides, err := config.ParseSetFlags(deploySet)
	if err != nil {
		ui.Fatal("Invalid --set flag: %v", err)
	}

	commit := deployCommit
	if commit == "" {
		// Best effort; deploys from detached CI checkouts still carry a sha.
		if sha, err := artifact.HeadCommit(layout.Root); err == nil {
			commit = sha
		}
	}

	pipeline := release.NewPipeline(layout,
		release.WithRuntime(target.NewGcloudRuntime(deployProject, deployRegion)),
		release.WithRecorder(history.NewStore(layout)),
	)

	req := release.Request{
		ImageURL:       deployImage,
		CommitSHA:      commit,
		Environment:    deployEnv,
		RunMigration:   deployMigrate,
		Region:         deployRegion,
		ServiceAccount: deployServiceAccount,
	}

	outcome, err := pipeline.Run(context.Background(), req, overrides)
	if err != nil {
		ui.Fatal("Deployment failed: %v", err)
	}

	if outcome.ServiceEndpoint != "" {
		ui.Ship("Service live at %s", outcome.ServiceEndpoint)
		fmt.Println(outcome.ServiceEndpoint)
	} else {
		ui.Ship("Service deployed")
	}
}
