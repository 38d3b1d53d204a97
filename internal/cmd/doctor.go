package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/preflight"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// doctorCmd runs pre-flight checks.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Pre-flight checks for binaries and project layout",
	Long:  "Run diagnostic checks for git, gcloud, docker, sops, and the deploy directory.",
	Run:   runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	ui.Blue.Println("Running pre-flight checks...")
	fmt.Println()

	failed := 0

	warnings, errors := preflight.CheckAll()
	for _, bin := range []string{"git", "gcloud"} {
		if preflight.IsBinaryAvailable(bin) {
			ui.Green.Printf("  * %s is installed\n", bin)
		}
	}
	for _, e := range errors {
		ui.Red.Printf("  x %s\n", e)
		failed++
	}
	for _, w := range warnings {
		ui.Yellow.Printf("  ! %s\n", w)
	}

	fmt.Println()
	layout, err := config.Load()
	if err != nil {
		ui.Red.Printf("  x no deploy/config directory found\n")
		ui.Yellow.Println("    Run `stevedore init` to scaffold one.")
		failed++
	} else {
		problems := preflight.CheckLayout(layout)
		if len(problems) == 0 {
			envs, _ := layout.Environments()
			ui.Green.Printf("  * deploy layout OK (%d environment(s))\n", len(envs))
		}
		for _, p := range problems {
			ui.Red.Printf("  x %s\n", p)
			failed++
		}
	}

	fmt.Println()
	if failed > 0 {
		ui.Fatal("%d check(s) failed", failed)
	}
	ui.Success("All checks passed")
}
