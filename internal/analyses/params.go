// Package analyses ships the built-in analysis kinds. Each kind registers a
// declaration and a processor; the processors are deliberately small signal
// routines whose main job is to exercise the validated-parameter pipeline.
package analyses

import (
	"fmt"

	"github.com/provenact/provenact/internal/analysis"
)

// floatParam reads a numeric parameter that was validated as int|float.
// Decoders hand integers back in assorted widths, so all of them are
// accepted here.
func floatParam(params analysis.ParamMap, key string, fallback float64) float64 {
	v, ok := params[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return fallback
}

// stringParam reads a string parameter validated as KindString.
func stringParam(params analysis.ParamMap, key, fallback string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// series extracts the first data argument as a float series. Decoded input
// arrives as []any; in-process callers pass []float64 directly.
func series(data []any) ([]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("analyses: no input data supplied")
	}
	switch d := data[0].(type) {
	case []float64:
		return d, nil
	case []any:
		out := make([]float64, len(d))
		for i, v := range d {
			switch n := v.(type) {
			case int:
				out[i] = float64(n)
			case int64:
				out[i] = float64(n)
			case uint64:
				out[i] = float64(n)
			case float64:
				out[i] = n
			default:
				return nil, fmt.Errorf("analyses: sample %d is %T, want a number", i, v)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("analyses: input data is %T, want a numeric series", data[0])
	}
}
