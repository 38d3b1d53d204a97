package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/artifact"
	"github.com/cameronsjo/stevedore/internal/build"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	buildRegistry   string
	buildProject    string
	buildRepository string
	buildOwner      string
	buildImage      string
	buildTag        string
	buildContextDir string
	buildDockerfile string
	buildPush       bool
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build and push the container artifact",
	Long: `Build the container image and push it to the artifact registry.

The artifact reference is derived from the registry coordinates plus
either an explicit tag or, when no tag is given, the HEAD commit of the
build context. The resolved reference is printed on the last line of
output so CI steps can capture it for the deploy stage.

Examples:
  # Tag with the current HEAD commit
  stevedore build --registry reg.example.com --project p1 --owner acme --image app

  # Explicit release tag
  stevedore build --registry reg.example.com --project p1 --owner acme --image app -t v1.2.3

  # Build only, skip the push
  stevedore build ... --push=false`,
	Run: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildRegistry, "registry", "", "Registry host (required)")
	buildCmd.Flags().StringVar(&buildProject, "project", "", "Registry project identifier (required)")
	buildCmd.Flags().StringVar(&buildRepository, "repository", "cloud-run-source-deploy", "Registry repository")
	buildCmd.Flags().StringVar(&buildOwner, "owner", "", "Artifact owner or namespace (required)")
	buildCmd.Flags().StringVar(&buildImage, "image", "", "Image name (required)")
	buildCmd.Flags().StringVarP(&buildTag, "tag", "t", "", "Explicit artifact tag (default: HEAD commit sha)")
	buildCmd.Flags().StringVar(&buildContextDir, "context", ".", "Build context directory")
	buildCmd.Flags().StringVar(&buildDockerfile, "dockerfile", "", "Dockerfile path relative to the context")
	buildCmd.Flags().BoolVar(&buildPush, "push", true, "Push the image after building")

	buildCmd.MarkFlagRequired("registry")
	buildCmd.MarkFlagRequired("project")
	buildCmd.MarkFlagRequired("owner")
	buildCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	commit := ""
	if buildTag == "" {
		sha, err := artifact.HeadCommit(buildContextDir)
		if err != nil {
			ui.Fatal("No tag given and HEAD commit unavailable: %v", err)
		}
		commit = sha
	}

	ref, err := artifact.Resolve(buildRegistry, buildProject, buildRepository, buildOwner, buildImage, buildTag, commit)
	if err != nil {
		ui.Fatal("Invalid artifact coordinates: %v", err)
	}

	client, err := build.NewClient()
	if err != nil {
		ui.Fatal("Connect to docker: %v", err)
	}
	defer client.Close()

	builder := build.NewBuilder(client, buildContextDir, buildDockerfile)

	if err := builder.Build(ctx, ref); err != nil {
		ui.Fatal("Build failed: %v", err)
	}

	if buildPush {
		if err := builder.Push(ctx, ref); err != nil {
			ui.Fatal("Push failed: %v", err)
		}
	}

	ui.Package("Artifact ready")
	fmt.Println(ref.String())
}
