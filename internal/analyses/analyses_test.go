package analyses

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/provenact/provenact/internal/analysis"
	"github.com/provenact/provenact/internal/registry"
)

// construct builds a validated instance of a registered kind, failing the
// test on any construction error.
func construct(t *testing.T, slug string, params map[string]any) *analysis.Analysis {
	t.Helper()

	entry, err := registry.Lookup(slug)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", slug, err)
	}
	a, err := analysis.New(entry.Declaration, entry.Processor, params)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", slug, err)
	}
	return a
}

func TestBuiltins_AreRegistered(t *testing.T) {
	for _, slug := range []string{"bandpass-filter", "spike-rate", "isi", "signal-power"} {
		if _, err := registry.Lookup(slug); err != nil {
			t.Errorf("Lookup(%q) failed: %v", slug, err)
		}
	}
}

func TestBandpass_ConstructionContract(t *testing.T) {
	entry, err := registry.Lookup("bandpass-filter")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	_, err = analysis.New(entry.Declaration, entry.Processor, map[string]any{"low_cutoff": 10})
	var missErr *analysis.MissingParametersError
	if !errors.As(err, &missErr) {
		t.Errorf("missing high_cutoff: error = %v; want *MissingParametersError", err)
	}

	_, err = analysis.New(entry.Declaration, entry.Processor, map[string]any{
		"low_cutoff": "10", "high_cutoff": 20,
	})
	var typeErr *analysis.WrongTypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("string cutoff: error = %v; want *WrongTypeError", err)
	}
}

func TestBandpass_AttenuatesOutOfBandContent(t *testing.T) {
	const rate = 1000.0
	n := 2000
	samples := make([]float64, n)
	for i := range samples {
		ti := float64(i) / rate
		// In-band 50 Hz component plus slow 0.5 Hz drift.
		samples[i] = math.Sin(2*math.Pi*50*ti) + 5*math.Sin(2*math.Pi*0.5*ti)
	}

	a := construct(t, "bandpass-filter", map[string]any{
		"low_cutoff": 10, "high_cutoff": 100, "sample_rate": rate,
	})
	out, err := a.Run(context.Background(), samples)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	filtered, ok := out.([]float64)
	if !ok {
		t.Fatalf("Run() = %T; want []float64", out)
	}
	if len(filtered) != n {
		t.Fatalf("output length = %d; want %d", len(filtered), n)
	}

	// Skip the settling transient, then the drift should be mostly gone:
	// the filtered signal stays within the in-band amplitude while the raw
	// signal swings to ±6.
	var peak float64
	for _, v := range filtered[n/2:] {
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	if peak > 2 {
		t.Errorf("filtered peak = %g; want drift attenuated below 2", peak)
	}
	if peak < 0.2 {
		t.Errorf("filtered peak = %g; in-band 50 Hz component should survive", peak)
	}
}

func TestBandpass_RejectsBadCutoffsAtRun(t *testing.T) {
	a := construct(t, "bandpass-filter", map[string]any{"low_cutoff": 100, "high_cutoff": 10})

	if _, err := a.Run(context.Background(), []float64{1, 2, 3}); err == nil {
		t.Error("Run() should fail when high_cutoff <= low_cutoff")
	}
}

func TestBandpass_UnknownMethod(t *testing.T) {
	a := construct(t, "bandpass-filter", map[string]any{
		"low_cutoff": 10, "high_cutoff": 100, "method": "spectral",
	})

	if _, err := a.Run(context.Background(), []float64{1, 2, 3}); err == nil {
		t.Error("Run() should reject an unknown method")
	}
}

func TestSpikeRate_BinsAndMeanRate(t *testing.T) {
	a := construct(t, "spike-rate", map[string]any{
		"bin_size": 1.0, "t_start": 0.0, "t_stop": 4.0,
	})

	// 6 spikes over 4 seconds: 2 in bin 0, 1 in bin 1, 0 in bin 2, 3 in bin 3.
	spikes := []float64{0.1, 0.9, 1.5, 3.2, 3.4, 3.9}
	out, err := a.Run(context.Background(), spikes)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	res, ok := out.(*SpikeRateResult)
	if !ok {
		t.Fatalf("Run() = %T; want *SpikeRateResult", out)
	}

	wantCounts := []int{2, 1, 0, 3}
	if len(res.Counts) != len(wantCounts) {
		t.Fatalf("Counts = %v; want %v", res.Counts, wantCounts)
	}
	for i, want := range wantCounts {
		if res.Counts[i] != want {
			t.Errorf("Counts[%d] = %d; want %d", i, res.Counts[i], want)
		}
	}
	if res.MeanRate != 1.5 {
		t.Errorf("MeanRate = %g; want 1.5", res.MeanRate)
	}
}

func TestSpikeRate_SpikesOutsideWindowIgnored(t *testing.T) {
	a := construct(t, "spike-rate", map[string]any{
		"bin_size": 1.0, "t_start": 1.0, "t_stop": 2.0,
	})

	out, err := a.Run(context.Background(), []float64{0.5, 1.5, 2.5})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	res := out.(*SpikeRateResult)
	if res.Counts[0] != 1 {
		t.Errorf("Counts[0] = %d; want only the in-window spike", res.Counts[0])
	}
}

func TestISI_IntervalsAndUnits(t *testing.T) {
	a := construct(t, "isi", map[string]any{"unit": "ms"})

	out, err := a.Run(context.Background(), []float64{0.1, 0.3, 0.6})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	intervals := out.([]float64)

	want := []float64{200, 300}
	if len(intervals) != len(want) {
		t.Fatalf("intervals = %v; want %v", intervals, want)
	}
	for i := range want {
		if math.Abs(intervals[i]-want[i]) > 1e-9 {
			t.Errorf("intervals[%d] = %g; want %g", i, intervals[i], want[i])
		}
	}
}

func TestISI_TooFewSpikes(t *testing.T) {
	a := construct(t, "isi", nil)

	if _, err := a.Run(context.Background(), []float64{0.1}); err == nil {
		t.Error("Run() should fail with fewer than 2 spike times")
	}
}

func TestSignalPower_Segments(t *testing.T) {
	a := construct(t, "signal-power", map[string]any{
		"window": "none", "segment_length": 2,
	})

	out, err := a.Run(context.Background(), []float64{1, 1, 2, 2})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	powers := out.([]float64)

	want := []float64{1, 4}
	if len(powers) != len(want) {
		t.Fatalf("powers = %v; want %v", powers, want)
	}
	for i := range want {
		if math.Abs(powers[i]-want[i]) > 1e-9 {
			t.Errorf("powers[%d] = %g; want %g", i, powers[i], want[i])
		}
	}
}

func TestSignalPower_DecodedAnySlices(t *testing.T) {
	a := construct(t, "signal-power", map[string]any{"window": "none"})

	// Parameter files decode sample lists as []any with mixed numeric types.
	out, err := a.Run(context.Background(), []any{1, 2.0, int64(3)})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	powers := out.([]float64)
	if len(powers) != 1 {
		t.Fatalf("powers = %v; want a single whole-series segment", powers)
	}
	if math.Abs(powers[0]-(1+4+9)/3.0) > 1e-9 {
		t.Errorf("powers[0] = %g; want %g", powers[0], (1+4+9)/3.0)
	}
}
