package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented is returned by New when an analysis kind supplies no
// Processor. It signals an incomplete analysis definition, not a bad call.
var ErrNotImplemented = errors.New("analysis: kind does not implement a processor")

// ImplementationError reports a malformed declaration — a defect in the
// analysis kind itself (bad required-parameter list, bad type table, or a
// missing name/description), never in the caller's input.
type ImplementationError struct {
	Detail string
}

func (e *ImplementationError) Error() string {
	return "analysis: invalid declaration: " + e.Detail
}

// WrongParametersError reports that the caller supplied something other than
// a parameter mapping (e.g. a bool or a list).
type WrongParametersError struct {
	Got any
}

func (e *WrongParametersError) Error() string {
	return fmt.Sprintf("analysis: parameters must be a mapping, got %T", e.Got)
}

// MissingParametersError reports declared-required parameters absent from the
// caller's input. Missing is sorted for stable diagnostics.
type MissingParametersError struct {
	Missing []string
}

func (e *MissingParametersError) Error() string {
	return "analysis: missing required parameters: " + strings.Join(e.Missing, ", ")
}

// WrongTypeError reports a supplied value whose kind is outside the declared
// allowed set for its parameter.
type WrongTypeError struct {
	Param    string
	Expected KindSet
	Got      Kind
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("analysis: parameter %q must be %s, got %s", e.Param, e.Expected, e.Got)
}
