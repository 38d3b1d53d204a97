package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	renderEnv            string
	renderImage          string
	renderCommit         string
	renderRegion         string
	renderServiceAccount string
	renderOutput         string
	renderSet            []string
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render [service|job]",
	Short: "Render manifests without deploying",
	Long: `Render the service and job manifests for an environment to stdout.

Runs the same configuration layering and templating as a deployment, but
stops before touching the target. Use it to preview what a deploy would
apply, or in CI to lint manifests on pull requests.

Examples:
  # Render both manifests for staging
  stevedore render -e staging -i reg.example.com/p1/repo/acme/app:v1.2.3

  # Render only the job manifest, with an override applied
  stevedore render job -e staging -i ... --set max_instances=25

  # Write rendered manifests to a directory
  stevedore render -e staging -i ... -o /tmp/manifests`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"service", "job"},
	Run:       runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderEnv, "env", "e", "", "Target environment (required)")
	renderCmd.Flags().StringVarP(&renderImage, "image", "i", "", "Artifact reference to substitute")
	renderCmd.Flags().StringVar(&renderCommit, "commit", "", "Commit sha to substitute")
	renderCmd.Flags().StringVar(&renderRegion, "region", "", "Target region to substitute")
	renderCmd.Flags().StringVar(&renderServiceAccount, "service-account", "", "Runtime service account to substitute")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output directory (prints to stdout if not set)")
	renderCmd.Flags().StringArrayVar(&renderSet, "set", nil, "Override a config value (key=value, repeatable)")

	renderCmd.MarkFlagRequired("env")
	renderCmd.RegisterFlagCompletionFunc("env", completeEnvironments)

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	layout := loadLayout()

	overrides, err := config.ParseSetFlags(renderSet)
	if err != nil {
		ui.Fatal("Invalid --set flag: %v", err)
	}

	resolved, err := config.ResolveEnvironment(context.Background(), layout, renderEnv, overrides)
	if err != nil {
		ui.Fatal("Resolve configuration: %v", err)
	}

	// Same runtime keys a deployment supplies, so templates render the same.
	data := manifest.Data(resolved, map[string]any{
		"image_url":       renderImage,
		"commit_sha":      renderCommit,
		"service_account": renderServiceAccount,
		"region":          renderRegion,
		"environment":     renderEnv,
	})

	templates := map[string]string{
		"service": layout.ServiceTemplatePath(),
		"job":     layout.JobTemplatePath(),
	}
	which := []string{"service", "job"}
	if len(args) == 1 {
		which = []string{args[0]}
	}

	renderer := manifest.NewRenderer()
	failed := 0
	for _, name := range which {
		rendered, err := renderer.Render(templates[name], data)
		if err != nil {
			ui.Error("%s: %v", name, err)
			failed++
			continue
		}

		if renderOutput == "" {
			ui.Blue.Printf("--- %s ---\n", name)
			fmt.Print(rendered)
			fmt.Println()
			continue
		}

		if err := os.MkdirAll(renderOutput, 0755); err != nil {
			ui.Fatal("Create output dir: %v", err)
		}
		outPath := filepath.Join(renderOutput, name+".yaml")
		if err := os.WriteFile(outPath, []byte(rendered), 0644); err != nil {
			ui.Fatal("Write %s: %v", outPath, err)
		}
		ui.Success("%s → %s", name, outPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
