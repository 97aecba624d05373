package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provenact/provenact/internal/output"
	"github.com/provenact/provenact/internal/store"
)

var (
	historyLimit int

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show recorded analysis runs",
		Long: `Show the provenance trail: recorded runs, newest first, with their
outcome and age. Use --limit to control how many runs are shown.`,
		Example: `  provenact history
  provenact history --limit 5`,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	fmt.Print(output.RenderRunTable(runs))
	return nil
}
