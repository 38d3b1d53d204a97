package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/history"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var logPrune int

// logCmd shows release history.
var logCmd = &cobra.Command{
	Use:   "log [n]",
	Short: "Show release history",
	Long:  "Display recent releases recorded under deploy/.stevedore/releases, newest first.",
	Args:  cobra.MaximumNArgs(1),
	Run:   runLog,
}

func init() {
	logCmd.Flags().IntVar(&logPrune, "prune", 0, "Delete all but the newest N records")

	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) {
	count := 10
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			count = n
		}
	}

	store := history.NewStore(loadLayout())

	if logPrune > 0 {
		removed, err := store.Prune(logPrune)
		if err != nil {
			ui.Fatal("Prune history: %v", err)
		}
		ui.Success("Pruned %d record(s)", removed)
		return
	}

	records, err := store.List()
	if err != nil {
		ui.Fatal("Read history: %v", err)
	}

	if len(records) == 0 {
		ui.Yellow.Println("No releases recorded yet")
		return
	}

	ui.Blue.Println("Release History")
	fmt.Println()

	if len(records) > count {
		records = records[:count]
	}
	for _, rec := range records {
		ui.Bold.Printf("%s  %s\n", rec.RecordedAt.Format("2006-01-02 15:04"), rec.Environment)
		fmt.Printf("    image:  %s\n", rec.ImageURL)
		fmt.Printf("    commit: %s\n", rec.CommitSHA)
		if rec.ServiceEndpoint != "" {
			fmt.Printf("    url:    %s\n", rec.ServiceEndpoint)
		}
		fmt.Println()
	}
}
