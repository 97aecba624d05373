package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/provenact/provenact/internal/paramfile"
	"github.com/provenact/provenact/internal/registry"
	"github.com/provenact/provenact/internal/store"
)

var (
	runParamsFile  string
	runDataFile    string
	runAnnotations []string

	runCmd = &cobra.Command{
		Use:   "run <analysis>",
		Short: "Run an analysis and record it in the provenance trail",
		Long: `Construct the analysis from a parameter file, execute its processor over
the input data, and record the run — validated parameters, outcome, and any
annotations — in the provenance database.

Validation failures abort before anything is recorded: a run that never
constructed leaves no trail. Processing failures are recorded with outcome
"error" and the processor's message.`,
		Example: `  provenact run bandpass-filter --params params.yaml --data signal.yaml

  provenact run spike-rate --params params.yaml --data spikes.yaml \
      --annotate subject=rat-17 --annotate session=3`,
		Args: cobra.ExactArgs(1),
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVar(&runParamsFile, "params", "", "parameter file (YAML or JSON)")
	runCmd.Flags().StringVar(&runDataFile, "data", "", "input data file (YAML or JSON)")
	runCmd.Flags().StringArrayVar(&runAnnotations, "annotate", nil, "annotation as key=value (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	entry, err := registry.Lookup(args[0])
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
	if err := db.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	runID, err := executeAndRecord(cmd.Context(), db, entry, runParamsFile, runDataFile, runAnnotations)
	if err != nil {
		return err
	}

	run, err := db.GetRun(runID)
	if err != nil {
		return err
	}
	if run.Outcome == store.OutcomeOK {
		fmt.Printf("run %s: %s completed\n", runID, entry.Slug)
	} else {
		fmt.Printf("run %s: %s failed: %s\n", runID, entry.Slug, run.Error)
	}
	return nil
}

// executeAndRecord validates, runs, and persists one analysis execution.
// Construction failures propagate without touching the store; processing
// failures are recorded as error-outcome runs.
func executeAndRecord(ctx context.Context, db *store.Store, entry registry.Entry, paramsPath, dataPath string, annotations []string) (string, error) {
	a, err := validateParams(entry, paramsPath)
	if err != nil {
		return "", err
	}

	entries, err := paramfile.ParseAssignments(annotations)
	if err != nil {
		return "", err
	}
	a.Annotate(entries)

	var data []any
	if dataPath != "" {
		decoded, err := paramfile.Load(dataPath)
		if err != nil {
			return "", err
		}
		data = append(data, decoded)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	run := &store.Run{
		ID:          uuid.NewString(),
		Analysis:    entry.Slug,
		Description: a.Description(),
		Parameters:  a.InputParameters(),
		Outcome:     store.OutcomeOK,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := a.Run(ctx, data...); err != nil {
		run.Outcome = store.OutcomeError
		run.Error = err.Error()
	}

	if err := db.RecordRun(run, a); err != nil {
		return "", err
	}
	return run.ID, nil
}
