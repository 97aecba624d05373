package main

import (
	"fmt"
	"os"

	"github.com/provenact/provenact/internal/app"

	// Register the built-in analysis kinds.
	_ "github.com/provenact/provenact/internal/analyses"
)

func main() {
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
