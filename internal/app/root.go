package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for provenact
	RootCmd = &cobra.Command{
		Use:   "provenact",
		Short: "Validated analysis runs with a provenance trail",
		Long: `provenact runs declared analysis kinds over recorded data and keeps a
provenance trail of every run: which analysis, which validated parameters,
which outcome, plus free-form annotations.

Every analysis kind declares its contract up front — required parameters and
the kinds of values each parameter accepts. Construction is fail-fast: a run
only ever starts from a fully validated parameter set.

Quick Start:
  1. provenact list
  2. provenact describe bandpass-filter
  3. provenact validate bandpass-filter --params params.yaml
  4. provenact run bandpass-filter --params params.yaml --data signal.yaml

Examples:
  # See the available analysis kinds
  provenact list

  # Inspect a kind's parameter contract
  provenact describe spike-rate

  # Check a parameter file, re-checking on every save
  provenact validate spike-rate --params params.yaml --watch

  # Run and record, with annotations
  provenact run spike-rate --params params.yaml --data spikes.yaml \
      --annotate subject=rat-17 --annotate session=3

  # Review the provenance trail
  provenact history`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("provenact: validated analysis runs with a provenance trail")
			fmt.Println()
			fmt.Println("Run 'provenact list' to see the available analysis kinds.")
			fmt.Println("Run 'provenact --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.provenact/provenact.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(describeCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(annotateCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Create .provenact directory if it doesn't exist
	provenactDir := filepath.Join(home, ".provenact")
	if err := os.MkdirAll(provenactDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create provenact directory: %w", err)
	}

	return filepath.Join(provenactDir, "provenact.db"), nil
}
