package patch

// Patch document data structures for the route table fragment. The document
// selects the primary resource and carries a single replace operation for its
// route list, in the inline-patch shape understood by kustomize-style
// composition tools.

// Selector identifies the primary resource the patch applies to.
type Selector struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// RouteEntry is one (path prefix, target reference) pair in the route list.
// Source records where the entry came from for diagnostics; it is never
// serialized.
type RouteEntry struct {
	Path   string `json:"path"`
	Target string `json:"target"`
	Source string `json:"-"`
}

func (e RouteEntry) Equal(other RouteEntry) bool {
	return e.Path == other.Path && e.Target == other.Target
}

// Operation is a single RFC 6902 operation.
type Operation struct {
	Op    string       `json:"op"`
	Path  string       `json:"path"`
	Value []RouteEntry `json:"value"`
}

// Document is the complete output unit: a target selector plus the
// operations replacing the route list field.
type Document struct {
	Target Selector    `json:"target"`
	Patch  []Operation `json:"patch"`
}

// Entries returns the route entries carried by the document, in document
// order.
func (d *Document) Entries() []RouteEntry {
	var entries []RouteEntry
	for _, op := range d.Patch {
		entries = append(entries, op.Value...)
	}
	return entries
}
