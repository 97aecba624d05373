package analysis

import (
	"reflect"
	"strings"
)

// Kind identifies the semantic type of a parameter value. Declarations
// constrain parameters to a closed set of kinds rather than concrete Go
// types, so a parameter declared as KindInt accepts any integer width but
// never a float — there is no numeric coercion.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindList
	KindMap
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindBool:    "bool",
	KindList:    "list",
	KindMap:     "map",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// valid reports whether k is one of the declared kind tags.
func (k Kind) valid() bool {
	return k > KindInvalid && k <= KindMap
}

// KindOf returns the Kind of a runtime value. Values outside the closed set
// (nil, channels, funcs, structs) map to KindInvalid and never satisfy a
// declared kind set.
func KindOf(v any) Kind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case bool:
		return KindBool
	case []any:
		return KindList
	case map[string]any:
		return KindMap
	}

	// Typed slices and maps (e.g. []float64 from a decoder) still count as
	// list/map values.
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		return KindMap
	}

	return KindInvalid
}

// KindSet is the set of kinds a declared parameter may take. A declaration
// must always use a non-empty set, even for a single allowed kind.
type KindSet []Kind

// Contains reports whether k is in the set.
func (s KindSet) Contains(k Kind) bool {
	for _, want := range s {
		if want == k {
			return true
		}
	}
	return false
}

// String renders the set as "int|float" for error messages and tables.
func (s KindSet) String() string {
	if len(s) == 0 {
		return "(none)"
	}
	names := make([]string, len(s))
	for i, k := range s {
		names[i] = k.String()
	}
	return strings.Join(names, "|")
}
