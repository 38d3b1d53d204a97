package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/ui"
)

var initForce bool

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold the deploy/ directory",
	Long: `Initialize a stevedore project with the required directory structure
and starter files.

This creates:
  deploy/
    config/
      base.yaml              Shared configuration defaults
      staging.yaml           Staging environment overrides
      production.yaml        Production environment overrides
    templates/
      service.yaml.tmpl      Service manifest template
      job.yaml.tmpl          Pre-deploy job manifest template

If no directory is specified, the current directory is used. Existing
files are left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")

	rootCmd.AddCommand(initCmd)
}

var starterFiles = map[string]string{
	"config/base.yaml": `# Shared defaults, overridden per environment.
app_name: app
memory: 512Mi
cpu: "1"
max_instances: 10
min_instances: 0
`,
	"config/staging.yaml": `max_instances: 2
`,
	"config/production.yaml": `memory: 1Gi
min_instances: 1
`,
	"templates/service.yaml.tmpl": `apiVersion: serving.knative.dev/v1
kind: Service
metadata:
  name: {{ .app_name }}-{{ .environment }}
spec:
  template:
    metadata:
      annotations:
        autoscaling.knative.dev/minScale: "{{ .min_instances }}"
        autoscaling.knative.dev/maxScale: "{{ .max_instances }}"
        stevedore/commit: "{{ .commit_sha }}"
    spec:
      {{- if .service_account }}
      serviceAccountName: {{ .service_account }}
      {{- end }}
      containers:
        - image: {{ .image_url }}
          resources:
            limits:
              memory: {{ .memory }}
              cpu: {{ .cpu | quote }}
`,
	"templates/job.yaml.tmpl": `apiVersion: run.googleapis.com/v1
kind: Job
metadata:
  name: {{ .app_name }}-{{ .environment }}-migrate
spec:
  template:
    spec:
      template:
        spec:
          {{- if .service_account }}
          serviceAccountName: {{ .service_account }}
          {{- end }}
          containers:
            - image: {{ .image_url }}
              command: ["/app/migrate"]
`,
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	deployDir := filepath.Join(absDir, "deploy")
	ui.Header("Initializing stevedore project in %s", absDir)
	fmt.Println()

	for _, dir := range []string{"config", "templates", filepath.Join(".stevedore", "releases")} {
		if err := os.MkdirAll(filepath.Join(deployDir, dir), 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	names := make([]string, 0, len(starterFiles))
	for name := range starterFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	written := 0
	for _, name := range names {
		content := starterFiles[name]
		path := filepath.Join(deployDir, filepath.FromSlash(name))
		if _, err := os.Stat(path); err == nil && !initForce {
			ui.Yellow.Printf("  - %s (exists, skipped)\n", name)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		ui.Green.Printf("  * %s\n", name)
		written++
	}

	fmt.Println()
	ui.Success("Scaffolded %d file(s)", written)
	ui.Blue.Println("\nNext steps:")
	fmt.Println("  1. Edit deploy/config/base.yaml for your application")
	fmt.Println("  2. stevedore doctor")
	fmt.Println("  3. stevedore build --registry ... --project ... --owner ... --image ...")
	fmt.Println("  4. stevedore deploy -e staging -i <reference>")

	return nil
}
