package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provenact/provenact/internal/output"
	"github.com/provenact/provenact/internal/registry"
)

var describeCmd = &cobra.Command{
	Use:   "describe <analysis>",
	Short: "Show an analysis kind's parameter contract",
	Long: `Show one analysis kind in full: its name, description, and every
declared parameter with its allowed kinds and whether it is required.`,
	Example: `  provenact describe bandpass-filter`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := registry.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Print(output.RenderDeclaration(entry))
		return nil
	},
}
