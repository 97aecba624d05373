package analyses

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/provenact/provenact/internal/analysis"
	"github.com/provenact/provenact/internal/registry"
)

func init() {
	registry.Register(registry.Entry{
		Slug: "spike-rate",
		Declaration: analysis.Declaration{
			Name:           "Spike rate histogram",
			Description:    "Counts spike events per time bin and reports the firing rate",
			RequiredParams: []string{"bin_size"},
			RequiredTypes: map[string]analysis.KindSet{
				"bin_size": {analysis.KindInt, analysis.KindFloat},
				"t_start":  {analysis.KindInt, analysis.KindFloat},
				"t_stop":   {analysis.KindInt, analysis.KindFloat},
			},
		},
		Processor: analysis.ProcessorFunc(spikeRate),
	})

	registry.Register(registry.Entry{
		Slug: "isi",
		Declaration: analysis.Declaration{
			Name:        "Inter-spike intervals",
			Description: "Computes intervals between successive spike times",
			RequiredTypes: map[string]analysis.KindSet{
				"unit": {analysis.KindString},
			},
		},
		Processor: analysis.ProcessorFunc(interSpikeIntervals),
	})
}

// SpikeRateResult is the binned output of the spike-rate analysis.
type SpikeRateResult struct {
	BinSize  float64
	TStart   float64
	TStop    float64
	Counts   []int
	MeanRate float64 // spikes per time unit over [TStart, TStop)
}

func spikeRate(ctx context.Context, params analysis.ParamMap, data ...any) (any, error) {
	times, err := series(data)
	if err != nil {
		return nil, err
	}
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)

	binSize := floatParam(params, "bin_size", 0)
	if binSize <= 0 {
		return nil, fmt.Errorf("spike-rate: bin_size must be positive, got %g", binSize)
	}

	tStart := floatParam(params, "t_start", 0)
	tStop := floatParam(params, "t_stop", 0)
	if _, ok := params["t_stop"]; !ok {
		if len(sorted) > 0 {
			tStop = sorted[len(sorted)-1] + binSize
		} else {
			tStop = tStart + binSize
		}
	}
	if tStop <= tStart {
		return nil, fmt.Errorf("spike-rate: t_stop %g must exceed t_start %g", tStop, tStart)
	}

	nBins := int(math.Ceil((tStop - tStart) / binSize))
	counts := make([]int, nBins)
	total := 0
	for _, t := range sorted {
		if t < tStart || t >= tStop {
			continue
		}
		counts[int((t-tStart)/binSize)]++
		total++
	}

	return &SpikeRateResult{
		BinSize:  binSize,
		TStart:   tStart,
		TStop:    tStop,
		Counts:   counts,
		MeanRate: float64(total) / (tStop - tStart),
	}, nil
}

func interSpikeIntervals(ctx context.Context, params analysis.ParamMap, data ...any) (any, error) {
	times, err := series(data)
	if err != nil {
		return nil, err
	}
	if len(times) < 2 {
		return nil, fmt.Errorf("isi: need at least 2 spike times, got %d", len(times))
	}

	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)

	// unit only rescales the output; spike times are assumed seconds.
	scale := 1.0
	switch unit := stringParam(params, "unit", "s"); unit {
	case "s":
	case "ms":
		scale = 1e3
	case "us":
		scale = 1e6
	default:
		return nil, fmt.Errorf("isi: unknown unit %q (want s, ms or us)", unit)
	}

	intervals := make([]float64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		intervals[i-1] = (sorted[i] - sorted[i-1]) * scale
	}
	return intervals, nil
}
