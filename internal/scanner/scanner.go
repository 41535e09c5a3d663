package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	routegen_fs "github.com/routetable/routegen/internal/fs"
)

// RouteSource is one discovered satellite manifest. The set of RouteSources
// is recomputed from the directory on every run; nothing is cached between
// invocations.
type RouteSource struct {
	Identifier string // filename stem minus the configured suffix
	SourcePath string // retained for diagnostics only
}

// DuplicateIdentifierError reports two files deriving the same identifier,
// or a file whose derived identifier is empty.
type DuplicateIdentifierError struct {
	Identifier string
	Path       string
	Other      string
}

func (err *DuplicateIdentifierError) Error() string {
	if err.Identifier == "" {
		return fmt.Sprintf("route source %q derives an empty identifier", err.Path)
	}
	return fmt.Sprintf("route sources %q and %q derive the same identifier %q", err.Other, err.Path, err.Identifier)
}

// Scanner selects satellite manifests directly inside a directory
// (non-recursive) by suffix and extension, e.g. `*-route.yaml`.
type Scanner struct {
	fsys       fs.FS
	dir        string
	suffix     string
	extensions []string
}

func New(fsys fs.FS) *Scanner {
	return &Scanner{fsys: fsys}
}

// WithDir sets the directory name used when reporting source paths. The
// scanner itself always reads the root of its fs.FS.
func (s *Scanner) WithDir(dir string) *Scanner {
	s.dir = dir
	return s
}

func (s *Scanner) WithSuffix(suffix string) *Scanner {
	s.suffix = suffix
	return s
}

// WithExtensions sets the file extensions selecting satellite manifests.
// With more than one extension two files can legitimately collapse onto the
// same identifier (login-route.yaml vs. login-route.yml); Scan reports that
// as a DuplicateIdentifierError.
func (s *Scanner) WithExtensions(extensions []string) *Scanner {
	s.extensions = extensions
	return s
}

// Scan returns the set of route sources, keyed by identifier. Files not
// matching the suffix/extension pattern are skipped; the directory may hold
// unrelated content. Callers receive an unordered set: ordering is
// established later, never by directory enumeration order.
func (s *Scanner) Scan() (map[string]RouteSource, error) {
	if len(s.extensions) == 0 {
		s.extensions = []string{".yaml", ".yml"}
	}

	patterns := make([]string, len(s.extensions))
	for i, ext := range s.extensions {
		patterns[i] = "*" + s.suffix + ext
	}

	fsys, err := routegen_fs.NewFilterFS(s.fsys, patterns, nil)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read route source directory %s: %w", s.dir, err)
	}

	sources := make(map[string]RouteSource, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		src := RouteSource{
			Identifier: s.identifier(e.Name()),
			SourcePath: path.Join(s.dir, e.Name()),
		}

		if src.Identifier == "" {
			return nil, &DuplicateIdentifierError{Path: src.SourcePath}
		}
		if other, ok := sources[src.Identifier]; ok {
			return nil, &DuplicateIdentifierError{Identifier: src.Identifier, Path: src.SourcePath, Other: other.SourcePath}
		}
		sources[src.Identifier] = src
	}

	return sources, nil
}

func (s *Scanner) identifier(name string) string {
	for _, ext := range s.extensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(strings.TrimSuffix(name, ext), s.suffix)
		}
	}
	return ""
}
