package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provenact/provenact/internal/paramfile"
	"github.com/provenact/provenact/internal/store"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <run-id> <key=value>...",
	Short: "Attach annotations to a recorded run",
	Long: `Merge annotations onto a recorded run. Existing keys are overwritten,
new keys added; annotations are never removed. Values are parsed as YAML
scalars, so numbers and booleans keep their type.`,
	Example: `  provenact annotate 2f9f1f76-... subject=rat-17 session=3`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := paramfile.ParseAssignments(args[1:])
		if err != nil {
			return err
		}

		dbPath, err := getDBPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		// Reject unknown run IDs instead of silently creating orphan rows.
		if _, err := db.GetRun(args[0]); err != nil {
			return err
		}
		if err := db.MergeAnnotations(args[0], entries); err != nil {
			return err
		}

		fmt.Printf("annotated run %s with %d entries\n", args[0], len(entries))
		return nil
	},
}
