package python

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps import references to file paths confined to a project root.
// References whose top-level component is in the non-local set, and
// references that resolve to paths outside the root, are dropped without
// error. A local-looking reference with no file behind it resolves to a
// *UnresolvedImportError.
type Resolver struct {
	projectRoot string
	nonLocal    map[string]bool
}

// NewResolver creates a resolver rooted at projectRoot. nonLocalModules is
// the set of top-level module names to classify as standard-library or
// third-party; see StdlibModules for the default.
func NewResolver(projectRoot string, nonLocalModules []string) *Resolver {
	nonLocal := make(map[string]bool, len(nonLocalModules))
	for _, name := range nonLocalModules {
		nonLocal[name] = true
	}
	return &Resolver{
		projectRoot: filepath.Clean(projectRoot),
		nonLocal:    nonLocal,
	}
}

// UnresolvedImportError reports an import that looked local but matched no
// file under the project root.
type UnresolvedImportError struct {
	Module string
	Dots   int
}

func (e *UnresolvedImportError) Error() string {
	return fmt.Sprintf("cannot resolve import %q", e.Spelling())
}

// Spelling returns the reference as written in source, dots included.
func (e *UnresolvedImportError) Spelling() string {
	return strings.Repeat(".", e.Dots) + e.Module
}

// Resolve maps ref, as seen from importingFile, to the local files it
// depends on. An empty result with a nil error means the reference is
// non-local and contributes no edge.
func (r *Resolver) Resolve(ref ImportReference, importingFile string) ([]string, error) {
	if ref.Dots == 0 && ref.Module == "" {
		return nil, nil
	}
	// The non-local filter applies to relative forms too: a package module
	// shadowing a stdlib name is deliberately not followed.
	if ref.Module != "" && r.nonLocal[topLevelComponent(ref.Module)] {
		return nil, nil
	}

	baseDir := r.baseDir(ref, importingFile)
	target := baseDir
	if ref.Module != "" {
		target = filepath.Join(baseDir, strings.ReplaceAll(ref.Module, ".", string(filepath.Separator)))
	}

	var paths []string

	// The module part itself: p.py first, then p/__init__.py. A pure
	// relative form ("from . import x") depends on the package __init__.
	moduleIsPlainFile := false
	switch {
	case ref.Dots > 0 && ref.Module == "":
		if init := filepath.Join(target, "__init__.py"); fileExists(init) {
			paths = append(paths, init)
		}
	default:
		if file := target + ".py"; fileExists(file) {
			paths = append(paths, file)
			moduleIsPlainFile = true
		} else if init := filepath.Join(target, "__init__.py"); fileExists(init) {
			paths = append(paths, init)
		}
	}

	// from-form names may be submodules of the resolved package rather than
	// symbols inside its __init__. A plain module file has no submodules.
	if len(ref.Names) > 0 && !moduleIsPlainFile {
		for _, name := range ref.Names {
			if file := filepath.Join(target, name+".py"); fileExists(file) {
				paths = append(paths, file)
			} else if init := filepath.Join(target, name, "__init__.py"); fileExists(init) {
				paths = append(paths, init)
			}
		}
	}

	if len(paths) == 0 {
		return nil, &UnresolvedImportError{Module: ref.Module, Dots: ref.Dots}
	}

	// Relative imports can escape the analyzed project; whatever lands
	// outside the root is non-local, never followed.
	local := paths[:0]
	for _, p := range paths {
		if r.withinRoot(p) {
			local = append(local, p)
		}
	}
	if len(local) == 0 {
		return nil, nil
	}

	return local, nil
}

// baseDir is the directory resolution starts from: the project root for
// absolute imports, the importing file's package (walked up one level per
// dot beyond the first) for relative ones.
func (r *Resolver) baseDir(ref ImportReference, importingFile string) string {
	if ref.Dots == 0 {
		return r.projectRoot
	}
	dir := filepath.Dir(importingFile)
	for i := 0; i < ref.Dots-1; i++ {
		dir = filepath.Dir(dir)
	}
	return dir
}

func (r *Resolver) withinRoot(path string) bool {
	rel, err := filepath.Rel(r.projectRoot, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func topLevelComponent(module string) string {
	if i := strings.IndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return module
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
