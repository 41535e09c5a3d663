package assembler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/routetable/routegen/internal/patch"
)

// PathCollisionError reports two entries resolving to the same path prefix.
// Assembly never silently picks one.
type PathCollisionError struct {
	Path    string
	Sources [2]string
}

func (err *PathCollisionError) Error() string {
	return fmt.Sprintf("route path %q contributed by both %s and %s", err.Path, err.Sources[0], err.Sources[1])
}

// Assembler orders route entries deterministically and assembles the patch
// document. The entry order is a function of the entries themselves, never
// of directory enumeration: regenerating from an unchanged directory yields
// an identical document.
type Assembler struct {
	target patch.Selector
	field  string
	base   []patch.RouteEntry
}

func New(target patch.Selector, field string) *Assembler {
	return &Assembler{target: target, field: field}
}

// WithBase adds fixed entries that are always present, e.g. a default `/`
// route. Base entries participate in collision detection like any other.
func (a *Assembler) WithBase(base []patch.RouteEntry) *Assembler {
	a.base = base
	return a
}

// Assemble produces the document whose entry list is exactly
// {base entries} ∪ {derived entries}, sorted by path prefix. A duplicate
// path is a fatal PathCollisionError naming both contributing sources.
func (a *Assembler) Assemble(derived []patch.RouteEntry) (*patch.Document, error) {
	entries := make([]patch.RouteEntry, 0, len(a.base)+len(derived))
	entries = append(entries, a.base...)
	entries = append(entries, derived...)

	byPath := make(map[string]patch.RouteEntry, len(entries))
	for _, e := range entries {
		if other, ok := byPath[e.Path]; ok {
			return nil, &PathCollisionError{Path: e.Path, Sources: [2]string{other.Source, e.Source}}
		}
		byPath[e.Path] = e
	}

	slices.SortFunc(entries, func(a, b patch.RouteEntry) int {
		return strings.Compare(a.Path, b.Path)
	})

	return &patch.Document{
		Target: a.target,
		Patch: []patch.Operation{
			{Op: "replace", Path: a.field, Value: entries},
		},
	}, nil
}
