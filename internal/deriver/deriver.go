package deriver

import (
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/routetable/routegen/internal/logging"
	"github.com/routetable/routegen/internal/patch"
	"github.com/routetable/routegen/internal/scanner"
)

// Reference conventions for the target half of a route entry. The suffix
// used to recognize a satellite manifest may or may not be part of the
// resource name referenced by the primary resource; both conventions exist
// in the wild, so the choice is explicit configuration.
const (
	ReferenceStem       = "stem"       // namespace/<identifier><suffix>
	ReferenceIdentifier = "identifier" // namespace/<identifier>
)

// Rule is the derivation rule mapping a RouteSource to a RouteEntry. It is
// a pure function: same source in, same entry out, no side effects.
type Rule struct {
	Namespace string
	Suffix    string // the suffix the scanner stripped from the filename
	Reference string // ReferenceStem or ReferenceIdentifier
}

// Entry derives the route entry for a single source: the path prefix is the
// identifier with a leading slash, the target is the namespace-qualified
// resource name under the configured reference convention.
func (r Rule) Entry(src scanner.RouteSource) patch.RouteEntry {
	return patch.RouteEntry{
		Path:   "/" + src.Identifier,
		Target: r.Namespace + "/" + r.ReferenceName(src),
		Source: src.SourcePath,
	}
}

// ReferenceName returns the resource name the entry's target refers to.
func (r Rule) ReferenceName(src scanner.RouteSource) string {
	if r.Reference == ReferenceIdentifier {
		return src.Identifier
	}
	return src.Identifier + r.Suffix
}

// IdentifierMismatchError reports a satellite manifest whose declared name
// disagrees with the name derived from its filename.
type IdentifierMismatchError struct {
	Path     string
	Declared string
	Derived  string
}

func (err *IdentifierMismatchError) Error() string {
	return fmt.Sprintf("route source %q declares name %q but its filename derives %q", err.Path, err.Declared, err.Derived)
}

// Deriver maps discovered route sources to route entries, optionally
// validating each manifest's declared name against the derivation rule.
type Deriver struct {
	rule   Rule
	fsys   fs.FS // manifest contents, for strict-mode validation
	strict bool
	log    *logging.Logger
}

func New(rule Rule) *Deriver {
	return &Deriver{rule: rule, log: logging.NewNopLogger()}
}

func (d *Deriver) WithManifests(fsys fs.FS) *Deriver {
	d.fsys = fsys
	return d
}

func (d *Deriver) WithStrict(strict bool) *Deriver {
	d.strict = strict
	return d
}

func (d *Deriver) WithLogger(log *logging.Logger) *Deriver {
	d.log = log
	return d
}

// Derive maps every route source to its entry. With strict mode on, a
// manifest whose declared metadata.name disagrees with the derived
// reference name is a fatal IdentifierMismatchError; otherwise the mismatch
// is logged as a warning. The returned slice is unordered.
func (d *Deriver) Derive(sources map[string]scanner.RouteSource) ([]patch.RouteEntry, error) {
	entries := make([]patch.RouteEntry, 0, len(sources))

	for _, id := range slices.Sorted(maps.Keys(sources)) {
		src := sources[id]

		if d.fsys != nil {
			if err := d.validate(src); err != nil {
				if d.strict {
					return nil, err
				}
				d.log.Warnf("%v", err)
			}
		}

		entries = append(entries, d.rule.Entry(src))
	}

	return entries, nil
}

type manifest struct {
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
}

func (d *Deriver) validate(src scanner.RouteSource) error {
	bs, err := fs.ReadFile(d.fsys, path.Base(src.SourcePath))
	if err != nil {
		return fmt.Errorf("failed to read route source %s: %w", src.SourcePath, err)
	}

	var m manifest
	if err := yaml.Unmarshal(bs, &m); err != nil {
		return fmt.Errorf("failed to unmarshal route source %s: %w", src.SourcePath, err)
	}

	if derived := d.rule.ReferenceName(src); m.Metadata.Name != derived {
		return &IdentifierMismatchError{Path: src.SourcePath, Declared: m.Metadata.Name, Derived: derived}
	}
	return nil
}
