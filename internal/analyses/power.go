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
		Slug: "signal-power",
		Declaration: analysis.Declaration{
			Name:           "Signal power",
			Description:    "Mean squared amplitude per segment, optionally windowed",
			RequiredParams: []string{"window"},
			RequiredTypes: map[string]analysis.KindSet{
				"window":         {analysis.KindString},
				"segment_length": {analysis.KindInt},
			},
		},
		Processor: analysis.ProcessorFunc(signalPower),
	})
}

func signalPower(ctx context.Context, params analysis.ParamMap, data ...any) (any, error) {
	samples, err := series(data)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("signal-power: empty input series")
	}

	window := stringParam(params, "window", "none")
	if window != "none" && window != "hann" {
		return nil, fmt.Errorf("signal-power: unknown window %q (want none or hann)", window)
	}

	segLen := int(floatParam(params, "segment_length", float64(len(samples))))
	if segLen <= 0 {
		return nil, fmt.Errorf("signal-power: segment_length must be positive, got %d", segLen)
	}

	var powers []float64
	for start := 0; start < len(samples); start += segLen {
		end := start + segLen
		if end > len(samples) {
			end = len(samples)
		}
		powers = append(powers, segmentPower(samples[start:end], window))
	}
	return powers, nil
}

func segmentPower(segment []float64, window string) float64 {
	var sum float64
	n := len(segment)
	for i, v := range segment {
		if window == "hann" && n > 1 {
			v *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
		sum += v * v
	}
	return sum / float64(n)
}
