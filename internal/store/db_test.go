package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/provenact/provenact/internal/analysis"
)

// Helper function to create an in-memory store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return store
}

func testRun() *Run {
	return &Run{
		ID:          uuid.NewString(),
		Analysis:    "bandpass-filter",
		Description: "Attenuates signal content outside [low_cutoff, high_cutoff] Hz",
		Parameters: analysis.ParamMap{
			"low_cutoff":  float64(10),
			"high_cutoff": float64(100),
			"method":      "filtered",
		},
		Outcome:   OutcomeOK,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestNew(t *testing.T) {
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("Store.db should not be nil")
	}
}

// TestListRuns_NoSchema_ReturnsErrNotInitialized verifies that querying a
// fresh DB (no CreateSchema) returns ErrNotInitialized.
func TestListRuns_NoSchema_ReturnsErrNotInitialized(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	// Do NOT call CreateSchema — simulate uninitialized database.
	_, err = s.ListRuns(0)
	if err == nil {
		t.Fatal("ListRuns() should return an error on uninitialized DB")
	}
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ListRuns() error = %v; want errors.Is(err, ErrNotInitialized) to be true", err)
	}
}

func TestInsertRun_NoSchema_ReturnsErrNotInitialized(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	err = s.InsertRun(testRun())
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("InsertRun() error = %v; want errors.Is(err, ErrNotInitialized) to be true", err)
	}
}

// TestErrNotInitialized_ErrorMessage verifies that the sentinel has a
// human-readable message pointing at the recording command.
func TestErrNotInitialized_ErrorMessage(t *testing.T) {
	msg := ErrNotInitialized.Error()
	if msg == "" {
		t.Error("ErrNotInitialized.Error() should not be empty")
	}
	if !strings.Contains(msg, "provenact run") {
		t.Errorf("ErrNotInitialized message %q should contain 'provenact run'", msg)
	}
}

func TestInsertAndGetRun(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	run := testRun()
	if err := s.InsertRun(run); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}

	if got.Analysis != run.Analysis {
		t.Errorf("Analysis = %q; want %q", got.Analysis, run.Analysis)
	}
	if got.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q; want %q", got.Outcome, OutcomeOK)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v; want %v", got.CreatedAt, run.CreatedAt)
	}
	// Parameters round-trip through JSON, so numbers come back as float64.
	if got.Parameters["low_cutoff"] != float64(10) {
		t.Errorf("low_cutoff = %v; want 10", got.Parameters["low_cutoff"])
	}
	if got.Parameters["method"] != "filtered" {
		t.Errorf("method = %v; want %q", got.Parameters["method"], "filtered")
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	_, err := s.GetRun("no-such-run")
	if err == nil {
		t.Fatal("GetRun() should fail for an unknown ID")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v; want a not-found message", err)
	}
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	base := time.Now().UTC().Truncate(time.Second)
	ids := make([]string, 3)
	for i := 0; i < 3; i++ {
		run := testRun()
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		ids[i] = run.ID
		if err := s.InsertRun(run); err != nil {
			t.Fatalf("InsertRun() failed: %v", err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns(2) returned %d runs; want 2", len(runs))
	}
	if runs[0].ID != ids[2] {
		t.Errorf("first run = %s; want newest %s", runs[0].ID, ids[2])
	}
	if !runs[0].CreatedAt.After(runs[1].CreatedAt) {
		t.Errorf("runs not newest-first: %v then %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}

func TestRecordRun_FailedRunKeepsErrorText(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	run := testRun()
	run.Outcome = OutcomeError
	run.Error = "bandpass: need 0 < low_cutoff < high_cutoff, got [100, 10]"

	if err := s.RecordRun(run, nil); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if got.Outcome != OutcomeError {
		t.Errorf("Outcome = %q; want %q", got.Outcome, OutcomeError)
	}
	if got.Error != run.Error {
		t.Errorf("Error = %q; want %q", got.Error, run.Error)
	}
}

func TestMergeAnnotations_UpsertSemantics(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	run := testRun()
	if err := s.InsertRun(run); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	if err := s.MergeAnnotations(run.ID, map[string]any{"subject": "rat-17", "session": 3}); err != nil {
		t.Fatalf("MergeAnnotations() failed: %v", err)
	}
	if err := s.MergeAnnotations(run.ID, map[string]any{"session": 4, "probe": map[string]any{"channels": 32}}); err != nil {
		t.Fatalf("MergeAnnotations() failed: %v", err)
	}

	entries, err := s.GetAnnotations(run.ID)
	if err != nil {
		t.Fatalf("GetAnnotations() failed: %v", err)
	}

	if len(entries) != 3 {
		t.Errorf("annotations has %d keys %v; want 3", len(entries), entries)
	}
	// JSON round-trip: numbers come back as float64.
	if entries["session"] != float64(4) {
		t.Errorf("session = %v; want overwrite to 4", entries["session"])
	}
	if entries["subject"] != "rat-17" {
		t.Errorf("subject = %v; want %q", entries["subject"], "rat-17")
	}
	probe, ok := entries["probe"].(map[string]any)
	if !ok {
		t.Fatalf("probe = %T; want nested mapping", entries["probe"])
	}
	if probe["channels"] != float64(32) {
		t.Errorf("probe.channels = %v; want 32", probe["channels"])
	}
}

func TestRecordRun_PersistsInstanceAnnotations(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	decl := analysis.Declaration{
		Name:           "Band-pass filter",
		Description:    "test kind",
		RequiredParams: []string{"low_cutoff", "high_cutoff"},
	}
	proc := analysis.ProcessorFunc(func(ctx context.Context, params analysis.ParamMap, data ...any) (any, error) {
		return nil, nil
	})
	a, err := analysis.New(decl, proc, map[string]any{"low_cutoff": 10, "high_cutoff": 20})
	if err != nil {
		t.Fatalf("analysis.New() failed: %v", err)
	}
	a.Annotate(map[string]any{"operator": "svb"})

	run := testRun()
	if err := s.RecordRun(run, a); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	entries, err := s.GetAnnotations(run.ID)
	if err != nil {
		t.Fatalf("GetAnnotations() failed: %v", err)
	}
	if entries["operator"] != "svb" {
		t.Errorf("operator = %v; want %q", entries["operator"], "svb")
	}
}

func TestAnnotations_CascadeOnRunDelete(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	run := testRun()
	if err := s.InsertRun(run); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if err := s.MergeAnnotations(run.ID, map[string]any{"subject": "rat-17"}); err != nil {
		t.Fatalf("MergeAnnotations() failed: %v", err)
	}

	if _, err := s.DB().Exec("DELETE FROM runs WHERE id = ?", run.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	entries, err := s.GetAnnotations(run.ID)
	if err != nil {
		t.Fatalf("GetAnnotations() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("annotations survived run deletion: %v", entries)
	}
}
