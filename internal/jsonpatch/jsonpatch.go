package jsonpatch

import (
	"encoding/json"
	"fmt"

	jp "github.com/evanphx/json-patch/v5"

	"github.com/routetable/routegen/internal/patch"
)

type PatchError struct {
	msg string
}

func (p *PatchError) Error() string {
	return p.msg
}

var opts = jp.ApplyOptions{
	EnsurePathExistsOnAdd:    true, // will create paths
	AllowMissingPathOnRemove: true,
}

// Apply applies the operations of an assembled patch document to a JSON
// rendering of the primary resource. The generator never merges in its
// production path (the composition tool owns that); this exists so tests
// can check that the emitted operations replace the route list cleanly.
func Apply(ops []patch.Operation, doc json.RawMessage) (json.RawMessage, error) {
	// We only support add/remove/replace
	for _, op := range ops {
		switch op.Op {
		case "replace", "remove", "add": // OK
		default:
			return nil, &PatchError{fmt.Sprintf("unsupported patch operation %q, must be one of \"replace\", \"add\", \"remove\"", op.Op)}
		}
	}

	bs, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	p, err := jp.DecodePatch(bs)
	if err != nil {
		return nil, err
	}
	return p.ApplyWithOptions(doc, &opts)
}
