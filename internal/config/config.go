package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/routetable/routegen/internal/deriver"
	"github.com/routetable/routegen/internal/patch"
)

// Internal configuration data structures for the route table generator.

// Root is the top-level configuration structure.
type Root struct {
	Source Source  `json:"source,omitzero"`
	Target Target  `json:"target,omitzero"`
	Output Output  `json:"output,omitzero"`
	Rule   Rule    `json:"rule,omitzero"`
	Strict bool    `json:"strict,omitempty"`
	Base   []Entry `json:"base,omitempty"`

	_ struct{} `additionalProperties:"false"`
}

// Source configures route source discovery: the directory to scan and the
// filename convention selecting satellite manifests inside it. A file
// matches when its name ends in the suffix plus one of the extensions; the
// identifier is the filename with both stripped.
type Source struct {
	Dir        string   `json:"dir"`
	Suffix     string   `json:"suffix,omitzero"`
	Extensions []string `json:"extensions,omitempty"`

	_ struct{} `additionalProperties:"false"`
}

// Target identifies the primary resource the generated patch applies to,
// and the field path of its route list.
type Target struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Field     string `json:"field,omitzero"`

	_ struct{} `additionalProperties:"false"`
}

// Output configures where the patch artifact is written.
type Output struct {
	Path string `json:"path"`

	_ struct{} `additionalProperties:"false"`
}

// Rule configures the derivation rule. Reference picks the target reference
// convention: "stem" references namespace/<identifier><suffix>, "identifier"
// references namespace/<identifier>.
type Rule struct {
	Reference string `json:"reference,omitzero"`

	_ struct{} `additionalProperties:"false"`
}

// Entry is a base route entry that is always present in the assembled
// route list, e.g. a default `/` route.
type Entry struct {
	Path   string `json:"path"`
	Target string `json:"target"`

	_ struct{} `additionalProperties:"false"`
}

var defaults = Root{
	Source: Source{Suffix: "-route", Extensions: []string{".yaml", ".yml"}},
	Target: Target{Field: "/spec/routes"},
	Rule:   Rule{Reference: deriver.ReferenceStem},
}

// SetDefaults fills unset fields with their defaults.
func (r *Root) SetDefaults() {
	if r.Source.Suffix == "" {
		r.Source.Suffix = defaults.Source.Suffix
	}
	if len(r.Source.Extensions) == 0 {
		r.Source.Extensions = defaults.Source.Extensions
	}
	if r.Target.Field == "" {
		r.Target.Field = defaults.Target.Field
	}
	if r.Rule.Reference == "" {
		r.Rule.Reference = defaults.Rule.Reference
	}
}

// Error reports an invalid or incomplete configuration.
type Error struct {
	msg string
}

func (err *Error) Error() string {
	return err.msg
}

func errorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// ErrMissingOutput is returned when a run that writes the artifact has no
// output path configured. Dry runs and listings do not need one.
var ErrMissingOutput = errorf("output.path is required")

// Check verifies that the configuration is complete and coherent. It
// assumes defaults have been applied.
func (r *Root) Check() error {
	if r.Source.Dir == "" {
		return errorf("source.dir is required")
	}
	if r.Target.Kind == "" || r.Target.Name == "" || r.Target.Namespace == "" {
		return errorf("target.kind, target.name and target.namespace are required")
	}
	if !strings.HasPrefix(r.Target.Field, "/") {
		return errorf("target.field %q must be an absolute JSON pointer", r.Target.Field)
	}
	if r.Rule.Reference != deriver.ReferenceStem && r.Rule.Reference != deriver.ReferenceIdentifier {
		return errorf("rule.reference %q must be %q or %q", r.Rule.Reference, deriver.ReferenceStem, deriver.ReferenceIdentifier)
	}
	for _, e := range r.Base {
		if !strings.HasPrefix(e.Path, "/") {
			return errorf("base entry path %q must start with /", e.Path)
		}
		if e.Target == "" {
			return errorf("base entry %q is missing a target", e.Path)
		}
	}
	return nil
}

// BaseEntries returns the configured base entries as route entries, with
// their provenance pointing at the configuration. Each entry gets a
// distinct provenance so collision errors can name both sides.
func (r *Root) BaseEntries() []patch.RouteEntry {
	entries := make([]patch.RouteEntry, len(r.Base))
	for i, e := range r.Base {
		entries[i] = patch.RouteEntry{Path: e.Path, Target: e.Target, Source: fmt.Sprintf("base entry %d (%s)", i, e.Path)}
	}
	return entries
}

// DerivationRule returns the deriver rule the configuration describes.
func (r *Root) DerivationRule() deriver.Rule {
	return deriver.Rule{
		Namespace: r.Target.Namespace,
		Suffix:    r.Source.Suffix,
		Reference: r.Rule.Reference,
	}
}

// Selector returns the patch target selector for the primary resource.
func (r *Root) Selector() patch.Selector {
	return patch.Selector{
		Kind:      r.Target.Kind,
		Name:      r.Target.Name,
		Namespace: r.Target.Namespace,
	}
}

// Validate checks raw configuration bytes against the embedded JSON schema.
func Validate(data []byte) error {
	var config any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return err
	}

	return rootSchema.Validate(config)
}

func ParseFile(filename string) (*Root, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	return Parse(bs)
}

func Parse(bs []byte) (*Root, error) {
	if err := Validate(bs); err != nil {
		return nil, err
	}

	var root Root
	if err := yaml.Unmarshal(bs, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &root, nil
}
