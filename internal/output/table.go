// Package output provides terminal output utilities for provenact.
//
// This package includes:
//   - Table rendering for registered analysis kinds and recorded runs
//   - Declaration detail rendering for the describe command
//   - Parameter set rendering for validation results
//
// Tables use ASCII characters and ANSI color codes for terminal output.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/provenact/provenact/internal/registry"
	"github.com/provenact/provenact/internal/store"
)

// ANSI color codes for outcome and kind display
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// RenderAnalysisTable renders the registered analysis kinds.
func RenderAnalysisTable(entries []registry.Entry) string {
	if len(entries) == 0 {
		return "No analyses registered.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-18s %-26s %s\n", "Analysis", "Required", "Description"))
	sb.WriteString(strings.Repeat("─", 78))
	sb.WriteString("\n")

	for _, e := range entries {
		required := strings.Join(e.Declaration.RequiredParams, ", ")
		if required == "" {
			required = "(none)"
		}
		sb.WriteString(fmt.Sprintf("%-18s %-26s %s\n",
			truncate(e.Slug, 18),
			truncate(required, 26),
			truncate(e.Declaration.Description, 34)))
	}

	return sb.String()
}

// RenderDeclaration renders one kind's full validation contract.
func RenderDeclaration(e registry.Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s — %s\n", e.Declaration.Name, e.Slug))
	sb.WriteString(e.Declaration.Description)
	sb.WriteString("\n\n")

	required := make(map[string]bool, len(e.Declaration.RequiredParams))
	for _, name := range e.Declaration.RequiredParams {
		required[name] = true
	}

	names := make([]string, 0, len(e.Declaration.RequiredTypes))
	for name := range e.Declaration.RequiredTypes {
		names = append(names, name)
	}
	for _, name := range e.Declaration.RequiredParams {
		if _, typed := e.Declaration.RequiredTypes[name]; !typed {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		sb.WriteString("Takes no parameters.\n")
		return sb.String()
	}
	sort.Strings(names)

	sb.WriteString(fmt.Sprintf("%-18s %-12s %s\n", "Parameter", "Kinds", "Presence"))
	sb.WriteString(strings.Repeat("─", 48))
	sb.WriteString("\n")
	for _, name := range names {
		kinds := "(unchecked)"
		if set, ok := e.Declaration.RequiredTypes[name]; ok {
			kinds = set.String()
		}
		presence := "optional"
		if required[name] {
			presence = "required"
		}
		sb.WriteString(fmt.Sprintf("%-18s %-12s %s\n", name, kinds, presence))
	}

	return sb.String()
}

// RenderParams renders a validated parameter set, sorted by key.
func RenderParams(params map[string]any) string {
	if len(params) == 0 {
		return "(no parameters)\n"
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s: %v\n", k, params[k]))
	}
	return sb.String()
}

// RenderRunTable renders recorded runs, newest first (as listed).
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	useColor := IsColorEnabled()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-36s %-18s %-8s %s\n", "Run", "Analysis", "Outcome", "When"))
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, run := range runs {
		outcome := run.Outcome
		if useColor {
			switch run.Outcome {
			case store.OutcomeOK:
				outcome = colorGreen + outcome + colorReset
			case store.OutcomeError:
				outcome = colorRed + outcome + colorReset
			default:
				outcome = colorGray + outcome + colorReset
			}
			// Pad manually: ANSI codes break %-8s width accounting.
			outcome += strings.Repeat(" ", max(0, 8-len(run.Outcome)))
		} else {
			outcome = fmt.Sprintf("%-8s", outcome)
		}

		sb.WriteString(fmt.Sprintf("%-36s %-18s %s %s\n",
			run.ID,
			truncate(run.Analysis, 18),
			outcome,
			humanize.Time(run.CreatedAt)))
	}

	return sb.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
