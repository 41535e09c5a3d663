package fs

import (
	"io/fs"
	"path"

	"github.com/gobwas/glob"
)

// filterFS hides files that do not pass the include/exclude globs.
// Directories always remain visible so that walking still works.
type filterFS struct {
	fsys     fs.FS
	included []glob.Glob
	excluded []glob.Glob
}

// NewFilterFS wraps fsys so that only files matching at least one of the
// included patterns (any file, if none are given) and none of the excluded
// patterns are visible. Patterns use '/' as the separator and apply to the
// full path inside fsys.
func NewFilterFS(fsys fs.FS, included, excluded []string) (fs.FS, error) {
	f := &filterFS{fsys: fsys}

	for _, p := range included {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}
		f.included = append(f.included, g)
	}
	for _, p := range excluded {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}
		f.excluded = append(f.excluded, g)
	}
	return f, nil
}

func (f *filterFS) Open(name string) (fs.File, error) {
	file, err := f.fsys.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if !info.IsDir() && !f.visible(name) {
		file.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return file, nil
}

func (f *filterFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(f.fsys, name)
	if err != nil {
		return nil, err
	}

	filtered := entries[:0]
	for _, e := range entries {
		if e.IsDir() || f.visible(path.Join(name, e.Name())) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (f *filterFS) visible(name string) bool {
	for _, g := range f.excluded {
		if g.Match(name) {
			return false
		}
	}
	if len(f.included) == 0 {
		return true
	}
	for _, g := range f.included {
		if g.Match(name) {
			return true
		}
	}
	return false
}
