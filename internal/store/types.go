package store

import (
	"time"

	"github.com/provenact/provenact/internal/analysis"
)

// Run outcome values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Run is a recorded analysis execution: which kind ran, with which validated
// parameters, and how it ended.
type Run struct {
	ID          string
	Analysis    string
	Description string
	Parameters  analysis.ParamMap
	Outcome     string
	Error       string
	CreatedAt   time.Time
}
