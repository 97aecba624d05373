// Package registry maps analysis kind slugs (e.g. "bandpass-filter") to
// their declarations and processors. Kinds register themselves at init time;
// the CLI resolves user-supplied names through Lookup.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/provenact/provenact/internal/analysis"
)

// Entry pairs an analysis kind's declaration with its processor.
type Entry struct {
	Slug        string
	Declaration analysis.Declaration
	Processor   analysis.Processor
}

var (
	mu      sync.RWMutex
	entries = make(map[string]Entry)
)

// Register adds a kind under its slug. Registering the same slug twice is a
// programming mistake and panics, like flag redefinition.
func Register(e Entry) {
	mu.Lock()
	defer mu.Unlock()

	if e.Slug == "" {
		panic("registry: entry has no slug")
	}
	if _, dup := entries[e.Slug]; dup {
		panic(fmt.Sprintf("registry: analysis %q registered twice", e.Slug))
	}
	entries[e.Slug] = e
}

// Lookup returns the entry for slug.
func Lookup(slug string) (Entry, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[slug]
	if !ok {
		return Entry{}, fmt.Errorf("unknown analysis %q (run 'provenact list' to see available kinds)", slug)
	}
	return e, nil
}

// All returns every registered entry, sorted by slug.
func All() []Entry {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
