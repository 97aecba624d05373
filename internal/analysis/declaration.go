package analysis

import "fmt"

// Declaration is the fixed metadata defining an analysis kind's validation
// contract. A kind declares which parameters callers must supply
// (RequiredParams) and which supplied parameters are type-checked
// (RequiredTypes). The two are independent: a required parameter may be
// untyped, and a typed parameter may be optional.
//
// A nil RequiredParams or RequiredTypes means the constraint is undeclared;
// a parameter-less analysis with both undeclared is legal.
type Declaration struct {
	Name           string
	Description    string
	RequiredParams []string
	RequiredTypes  map[string]KindSet
}

// checkShape validates the declaration itself, excluding the name and
// description (those are checked later, once caller parameters have been
// accepted). Any defect here is an ImplementationError.
func (d Declaration) checkShape() error {
	seen := make(map[string]bool, len(d.RequiredParams))
	for i, name := range d.RequiredParams {
		if name == "" {
			return &ImplementationError{Detail: fmt.Sprintf("required parameter %d has an empty name", i)}
		}
		if seen[name] {
			return &ImplementationError{Detail: fmt.Sprintf("required parameter %q declared twice", name)}
		}
		seen[name] = true
	}

	for name, kinds := range d.RequiredTypes {
		if name == "" {
			return &ImplementationError{Detail: "required type entry has an empty parameter name"}
		}
		if len(kinds) == 0 {
			return &ImplementationError{Detail: fmt.Sprintf("parameter %q declares no allowed kinds; use an explicit kind set", name)}
		}
		for _, k := range kinds {
			if !k.valid() {
				return &ImplementationError{Detail: fmt.Sprintf("parameter %q declares unknown kind tag %d", name, k)}
			}
		}
	}

	return nil
}
