// Package resolve maps patch-recorded paths to real files under a base
// directory. Patch files frequently record paths from the machine they were
// created on, so the resolver strips known prefixes and falls back to
// searching the tree by file name.
package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolver locates target files for patch paths under a base directory.
type Resolver struct {
	baseDir       string
	stripPrefixes []string // leading segments removed when present
	rootMarkers   []string // everything up to and including these is removed
}

// NewResolver creates a Resolver rooted at baseDir.
func NewResolver(baseDir string, stripPrefixes, rootMarkers []string) *Resolver {
	return &Resolver{
		baseDir:       baseDir,
		stripPrefixes: stripPrefixes,
		rootMarkers:   rootMarkers,
	}
}

// Resolve returns the on-disk location for a patch-recorded path, or false
// when no file can be found. The literal relative path is tried first; when
// absent, the tree is searched for any file with the same base name whose
// relative path suffix-matches the patch path. When several same-named files
// exist the first candidate in walk order wins; that choice is deterministic
// but may be wrong in ambiguous trees.
func (r *Resolver) Resolve(patchPath string) (string, bool) {
	p := patchPath
	for _, prefix := range r.stripPrefixes {
		p = strings.TrimPrefix(p, prefix)
	}
	for _, marker := range r.rootMarkers {
		if idx := strings.Index(p, marker); idx >= 0 {
			p = p[idx+len(marker):]
		}
	}

	target := filepath.Join(r.baseDir, filepath.FromSlash(p))
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return target, true
	}

	return r.searchByName(p)
}

// searchByName walks the base directory for a file with the same base name
// as p, accepting a candidate only if one normalized path is a suffix of the
// other.
func (r *Resolver) searchByName(p string) (string, bool) {
	name := filepath.Base(filepath.FromSlash(p))
	found := ""

	_ = filepath.WalkDir(r.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: keep looking elsewhere.
			return nil
		}
		if d.IsDir() || d.Name() != name {
			return nil
		}

		rel, err := filepath.Rel(r.baseDir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if strings.HasSuffix(p, rel) || strings.HasSuffix(rel, p) {
			found = path
			return fs.SkipAll
		}
		return nil
	})

	return found, found != ""
}
