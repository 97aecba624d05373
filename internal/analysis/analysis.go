// Package analysis implements the construction-time parameter validation
// contract shared by every analysis kind.
//
// Each kind supplies a Declaration (name, description, required parameters,
// allowed parameter kinds) and a Processor. New enforces the contract before
// an Analysis ever becomes observable: a malformed declaration fails with an
// ImplementationError, malformed caller input fails with one of the caller
// error types, and on success the instance carries exactly the validated
// parameter set. Failure is atomic — there is no partially constructed state.
package analysis

import (
	"context"
	"sort"
)

// ParamMap is a validated parameter mapping.
type ParamMap map[string]any

// Processor is the extension point every concrete analysis kind must
// implement. The framework invokes it after construction with the validated
// parameters and analysis-specific input data.
type Processor interface {
	Process(ctx context.Context, params ParamMap, data ...any) (any, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(ctx context.Context, params ParamMap, data ...any) (any, error)

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, params ParamMap, data ...any) (any, error) {
	return f(ctx, params, data...)
}

// Analysis is a validated analysis instance. Its parameter set is fixed at
// construction; only annotations may change afterwards. Annotate is not safe
// for concurrent use.
type Analysis struct {
	name        string
	description string
	params      ParamMap
	annotations map[string]any
	proc        Processor
}

// New validates decl against the caller-supplied params and returns a ready
// Analysis. params may be nil for parameter-less kinds; otherwise it must be
// a map[string]any (or ParamMap).
//
// Checks run in a fixed order: missing processor (ErrNotImplemented), then
// declaration shape (ImplementationError), then caller input (the caller
// error types), and finally the name/description requirement — which fires
// even when the supplied parameters are fully valid.
func New(decl Declaration, proc Processor, params any) (*Analysis, error) {
	if proc == nil {
		return nil, ErrNotImplemented
	}
	if err := decl.checkShape(); err != nil {
		return nil, err
	}

	supplied, err := asMapping(params)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range decl.RequiredParams {
		if _, ok := supplied[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingParametersError{Missing: missing}
	}

	// Type checks apply to every declared-type key that was supplied,
	// whether required or optional.
	for _, name := range sortedKeys(decl.RequiredTypes) {
		value, ok := supplied[name]
		if !ok {
			continue
		}
		if kinds := decl.RequiredTypes[name]; !kinds.Contains(KindOf(value)) {
			return nil, &WrongTypeError{Param: name, Expected: kinds, Got: KindOf(value)}
		}
	}

	if decl.Name == "" || decl.Description == "" {
		return nil, &ImplementationError{Detail: "analysis kind must set both a name and a description"}
	}

	// Only declared keys survive into the validated set; undeclared extras
	// are dropped.
	validated := make(ParamMap, len(decl.RequiredParams)+len(decl.RequiredTypes))
	for _, name := range decl.RequiredParams {
		validated[name] = supplied[name]
	}
	for name := range decl.RequiredTypes {
		if value, ok := supplied[name]; ok {
			validated[name] = value
		}
	}

	return &Analysis{
		name:        decl.Name,
		description: decl.Description,
		params:      validated,
		annotations: make(map[string]any),
		proc:        proc,
	}, nil
}

// asMapping normalizes the caller's params argument. nil means "no
// parameters"; anything else must be a string-keyed mapping.
func asMapping(params any) (ParamMap, error) {
	switch p := params.(type) {
	case nil:
		return ParamMap{}, nil
	case ParamMap:
		return p, nil
	case map[string]any:
		return p, nil
	default:
		return nil, &WrongParametersError{Got: params}
	}
}

func sortedKeys(m map[string]KindSet) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Name returns the declared analysis name.
func (a *Analysis) Name() string { return a.name }

// Description returns the declared analysis description.
func (a *Analysis) Description() string { return a.description }

// InputParameters returns a copy of the validated parameter set. The stored
// set never changes after construction.
func (a *Analysis) InputParameters() ParamMap {
	out := make(ParamMap, len(a.params))
	for k, v := range a.params {
		out[k] = v
	}
	return out
}

// Annotations returns the instance's annotation mapping.
func (a *Analysis) Annotations() map[string]any { return a.annotations }

// Annotate merges entries into the annotations: existing keys are
// overwritten, new keys added, nothing is ever removed. Values are
// unrestricted; nested mappings are fine.
func (a *Analysis) Annotate(entries map[string]any) {
	for k, v := range entries {
		a.annotations[k] = v
	}
}

// Run invokes the kind's processor with the validated parameters.
func (a *Analysis) Run(ctx context.Context, data ...any) (any, error) {
	return a.proc.Process(ctx, a.InputParameters(), data...)
}
