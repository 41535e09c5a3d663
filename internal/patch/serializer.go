package patch

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/akedrou/textdiff"
	"github.com/goccy/go-yaml"
)

// Serializer renders a Document to YAML and replaces the output artifact
// atomically. Rendering the same document twice produces byte-identical
// output: the document is all structs, so key order is fixed.
type Serializer struct {
	path string
}

func NewSerializer(path string) *Serializer {
	return &Serializer{path: path}
}

func (s *Serializer) Path() string {
	return s.path
}

func (s *Serializer) Render(doc *Document) ([]byte, error) {
	bs, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch document: %w", err)
	}
	return bs, nil
}

// Write replaces the artifact at the configured path with bs. The bytes are
// written to a temporary file in the same directory and renamed over the
// final path, so a concurrent reader never sees a partial file and a failed
// write leaves any previous artifact untouched.
func (s *Serializer) Write(bs []byte) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to chmod %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Diff compares the existing artifact against next and returns a unified
// diff plus whether the contents differ. A missing artifact diffs against
// empty content.
func (s *Serializer) Diff(next []byte) (string, bool, error) {
	prev, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, err
		}
		prev = nil
	}

	if bytes.Equal(prev, next) {
		return "", false, nil
	}
	return textdiff.Unified(s.path, s.path+".new", string(prev), string(next)), true, nil
}
