package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// loadLayout locates the project root and returns its layout, exiting with
// a hint when the command runs outside a stevedore project.
func loadLayout() *config.Layout {
	layout, err := config.Load()
	if err != nil {
		ui.Error("Not a stevedore project: %v", err)
		ui.Yellow.Println("\nRun `stevedore init` to scaffold one.")
		os.Exit(1)
	}
	return layout
}

// printChangelog prints the first lines of a release changelog.
func printChangelog(changelog string) {
	if changelog == "" {
		return
	}

	ui.Yellow.Println("What's new:")
	lines := strings.Split(changelog, "\n")
	maxLines := 10
	if len(lines) < maxLines {
		maxLines = len(lines)
	}
	for i := 0; i < maxLines; i++ {
		fmt.Printf("  %s\n", lines[i])
	}
	if len(lines) > maxLines {
		fmt.Printf("  ... (%d more lines)\n", len(lines)-maxLines)
	}
}
