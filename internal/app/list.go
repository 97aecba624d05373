package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provenact/provenact/internal/output"
	"github.com/provenact/provenact/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered analysis kinds",
	Long: `List every registered analysis kind with its required parameters.

Use 'provenact describe <analysis>' for a kind's full parameter contract.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(output.RenderAnalysisTable(registry.All()))
		return nil
	},
}
