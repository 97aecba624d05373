// Package paramfile loads caller-supplied parameter mappings from YAML or
// JSON files. The decoded value is returned as-is — a file whose top level is
// not a mapping is handed to the validator unchanged so the failure surfaces
// as a parameter error, not a parse error.
package paramfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Load reads and decodes a parameter file. YAML is a superset of JSON, so
// .json files work too. An empty file decodes to nil (no parameters).
func Load(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, nil
	}

	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return decoded, nil
}

// ParseAssignments converts key=value arguments into a mapping. Values are
// decoded as YAML scalars, so `session=4` yields an integer and
// `subject=rat-17` a string.
func ParseAssignments(args []string) (map[string]any, error) {
	entries := make(map[string]any, len(args))
	for _, arg := range args {
		idx := strings.IndexByte(arg, '=')
		if idx <= 0 {
			return nil, fmt.Errorf("invalid assignment %q, want key=value", arg)
		}
		key := strings.TrimSpace(arg[:idx])
		if key == "" {
			return nil, fmt.Errorf("invalid assignment %q, empty key", arg)
		}

		var value any
		if err := yaml.Unmarshal([]byte(arg[idx+1:]), &value); err != nil {
			// Unparseable scalars stay plain strings.
			value = arg[idx+1:]
		}
		entries[key] = value
	}
	return entries, nil
}
