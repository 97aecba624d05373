package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/provenact/provenact/internal/analysis"
	"github.com/provenact/provenact/internal/output"
	"github.com/provenact/provenact/internal/paramfile"
	"github.com/provenact/provenact/internal/registry"
	"github.com/provenact/provenact/internal/watcher"
)

var (
	validateParamsFile string
	validateWatch      bool

	validateCmd = &cobra.Command{
		Use:   "validate <analysis>",
		Short: "Validate a parameter file against an analysis kind",
		Long: `Construct the analysis from a parameter file without running it.

On success the validated parameter set is printed — including which supplied
keys were dropped for being undeclared. On failure the typed validation error
is reported.

With --watch the file is re-validated on every save, which makes it easy to
edit a parameter file until it passes.`,
		Example: `  # One-shot check
  provenact validate bandpass-filter --params params.yaml

  # Keep checking as the file is edited
  provenact validate bandpass-filter --params params.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().StringVar(&validateParamsFile, "params", "", "parameter file (YAML or JSON)")
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "re-validate whenever the parameter file changes")
}

func runValidate(cmd *cobra.Command, args []string) error {
	entry, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	if validateWatch && validateParamsFile == "" {
		return fmt.Errorf("--watch requires --params")
	}

	if !validateWatch {
		a, err := validateParams(entry, validateParamsFile)
		if err != nil {
			return err
		}
		fmt.Printf("%s: parameters valid\n", entry.Slug)
		fmt.Print(output.RenderParams(a.InputParameters()))
		return nil
	}

	check := func() {
		a, err := validateParams(entry, validateParamsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", validateParamsFile, err)
			return
		}
		fmt.Printf("%s: parameters valid\n", entry.Slug)
		fmt.Print(output.RenderParams(a.InputParameters()))
	}

	check()

	w, err := watcher.New(validateParamsFile, check)
	if err != nil {
		return err
	}
	defer w.Stop()
	w.Start()

	fmt.Fprintf(os.Stderr, "watching %s (Ctrl-C to stop)\n", validateParamsFile)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	return nil
}

// validateParams loads the parameter file (if any) and constructs the
// analysis, exercising the full validation contract.
func validateParams(entry registry.Entry, paramsPath string) (*analysis.Analysis, error) {
	var params any
	if paramsPath != "" {
		var err error
		params, err = paramfile.Load(paramsPath)
		if err != nil {
			return nil, err
		}
	}
	return analysis.New(entry.Declaration, entry.Processor, params)
}
