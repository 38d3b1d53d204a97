package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/ui"
	"github.com/cameronsjo/stevedore/internal/update"
)

var updateCheckOnly bool

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update stevedore to the latest version",
	Long: `Update stevedore to the latest version from GitHub releases.

This command will:
1. Check for a newer version on GitHub
2. Download the appropriate binary for your platform
3. Replace the current binary with the new version

Examples:
  stevedore update           # Update to latest version
  stevedore update --check   # Check for updates without installing`,
	Run: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check for updates, don't install")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	platform := update.GetPlatformInfo()

	ui.Blue.Printf("Current version: %s (%s)\n", version, platform)
	ui.Blue.Println("Checking for updates...")

	if updateCheckOnly {
		release, available, err := update.CheckForUpdate(ctx, version)
		if err != nil {
			ui.Error("Failed to check for updates: %v", err)
			return
		}
		if !available {
			ui.Success("You're running the latest version!")
			return
		}

		ui.Success("New version available: %s (released %s)", release.Version, release.PublishedAt)
		fmt.Println()
		ui.Blue.Println("To update, run: stevedore update")
		fmt.Println()
		printChangelog(release.Changelog)
		return
	}

	release, err := update.Update(ctx, version)
	if err != nil {
		ui.Error("Update failed: %v", err)
		return
	}
	if release == nil {
		ui.Success("You're already running the latest version!")
		return
	}

	fmt.Println()
	ui.Success("Successfully updated to version %s!", release.Version)
	fmt.Println()
	printChangelog(release.Changelog)
}
