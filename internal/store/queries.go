package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/provenact/provenact/internal/analysis"
)

// Run operations

// InsertRun records an analysis run. The validated parameter set is stored
// as JSON.
func (s *Store) InsertRun(run *Run) error {
	paramsJSON, err := json.Marshal(run.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}

	query := `
		INSERT INTO runs
		(id, analysis, description, parameters, outcome, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		run.ID,
		run.Analysis,
		run.Description,
		string(paramsJSON),
		run.Outcome,
		run.Error,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return wrapQueryErr(fmt.Sprintf("failed to insert run %s", run.ID), err)
	}

	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	query := `
		SELECT id, analysis, description, parameters, outcome, error, created_at
		FROM runs
		WHERE id = ?
	`

	run, err := scanRun(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("failed to get run %s", id), err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means no
// limit.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, analysis, description, parameters, outcome, error, created_at
		FROM runs
		ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapQueryErr("failed to list runs", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var paramsJSON string
	var createdAt string

	err := row.Scan(
		&run.ID,
		&run.Analysis,
		&run.Description,
		&paramsJSON,
		&run.Outcome,
		&run.Error,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(paramsJSON), &run.Parameters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parameters for %s: %w", run.ID, err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", run.ID, err)
	}

	return &run, nil
}

// Annotation operations

// MergeAnnotations upserts annotation entries for a run: existing keys are
// overwritten, new keys added, nothing removed. Values are stored as JSON.
func (s *Store) MergeAnnotations(runID string, entries map[string]any) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT OR REPLACE INTO annotations (run_id, key, value) VALUES (?, ?, ?)`
	for key, value := range entries {
		valueJSON, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal annotation %q: %w", key, err)
		}
		if _, err := tx.Exec(query, runID, key, string(valueJSON)); err != nil {
			return wrapQueryErr(fmt.Sprintf("failed to merge annotation %q for run %s", key, runID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit annotations: %w", err)
	}
	return nil
}

// GetAnnotations returns every annotation recorded for a run.
func (s *Store) GetAnnotations(runID string) (map[string]any, error) {
	query := `SELECT key, value FROM annotations WHERE run_id = ?`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("failed to get annotations for run %s", runID), err)
	}
	defer rows.Close()

	entries := make(map[string]any)
	for rows.Next() {
		var key, valueJSON string
		if err := rows.Scan(&key, &valueJSON); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		var value any
		if err := json.Unmarshal([]byte(valueJSON), &value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal annotation %q: %w", key, err)
		}
		entries[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate annotations: %w", err)
	}

	return entries, nil
}

// RecordRun persists a completed construction+execution in one step: the run
// row plus any annotations gathered on the instance.
func (s *Store) RecordRun(run *Run, a *analysis.Analysis) error {
	if err := s.InsertRun(run); err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	return s.MergeAnnotations(run.ID, a.Annotations())
}
