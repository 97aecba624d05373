package analyses

import (
	"context"
	"fmt"
	"math"

	"github.com/provenact/provenact/internal/analysis"
	"github.com/provenact/provenact/internal/registry"
)

func init() {
	registry.Register(registry.Entry{
		Slug: "bandpass-filter",
		Declaration: analysis.Declaration{
			Name:           "Band-pass filter",
			Description:    "Attenuates signal content outside [low_cutoff, high_cutoff] Hz",
			RequiredParams: []string{"low_cutoff", "high_cutoff"},
			RequiredTypes: map[string]analysis.KindSet{
				"low_cutoff":  {analysis.KindInt, analysis.KindFloat},
				"high_cutoff": {analysis.KindInt, analysis.KindFloat},
				"method":      {analysis.KindString},
				"sample_rate": {analysis.KindInt, analysis.KindFloat},
			},
		},
		Processor: analysis.ProcessorFunc(bandpass),
	})
}

// bandpass runs a first-order high-pass followed by a first-order low-pass
// over the input series. method selects the output representation: "filtered"
// (default) returns the series, "envelope" returns its absolute values.
func bandpass(ctx context.Context, params analysis.ParamMap, data ...any) (any, error) {
	samples, err := series(data)
	if err != nil {
		return nil, err
	}

	low := floatParam(params, "low_cutoff", 0)
	high := floatParam(params, "high_cutoff", 0)
	rate := floatParam(params, "sample_rate", 1000)
	if low <= 0 || high <= low {
		return nil, fmt.Errorf("bandpass: need 0 < low_cutoff < high_cutoff, got [%g, %g]", low, high)
	}
	if rate <= 2*high {
		return nil, fmt.Errorf("bandpass: sample_rate %g too low for high_cutoff %g", rate, high)
	}

	out := highpass(samples, low, rate)
	out = lowpass(out, high, rate)

	switch method := stringParam(params, "method", "filtered"); method {
	case "filtered":
		return out, nil
	case "envelope":
		for i, v := range out {
			out[i] = math.Abs(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("bandpass: unknown method %q", method)
	}
}

func lowpass(samples []float64, cutoff, rate float64) []float64 {
	alpha := smoothing(cutoff, rate)
	out := make([]float64, len(samples))
	var prev float64
	for i, v := range samples {
		prev += alpha * (v - prev)
		out[i] = prev
	}
	return out
}

func highpass(samples []float64, cutoff, rate float64) []float64 {
	alpha := 1 - smoothing(cutoff, rate)
	out := make([]float64, len(samples))
	var prevIn, prevOut float64
	for i, v := range samples {
		if i == 0 {
			out[i] = v
		} else {
			out[i] = alpha * (prevOut + v - prevIn)
		}
		prevIn, prevOut = v, out[i]
	}
	return out
}

func smoothing(cutoff, rate float64) float64 {
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / rate
	return dt / (rc + dt)
}
