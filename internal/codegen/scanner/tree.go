package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TreeOptions selects the packages ScanTree visits. Patterns are doublestar
// globs matched against slash-separated directories relative to Root ("."
// is the root itself). An empty Include selects every package.
type TreeOptions struct {
	Root    string
	Include []string
	Exclude []string
}

// Tree is the result of ScanTree.
type Tree struct {
	Root       string     `json:"root"`
	ModulePath string     `json:"modulePath"`
	Packages   []*Package `json:"packages"` // every selected package with Go files, scripts or not
}

// ScanTree scans every selected package below opts.Root, which must sit
// inside a module. Directories named testdata or vendor, hidden and
// underscore-prefixed directories, and nested modules are skipped.
func ScanTree(opts TreeOptions) (*Tree, error) {
	for _, p := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid package pattern %q", p)
		}
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}
	modRoot, modulePath, err := FindModule(root)
	if err != nil {
		return nil, err
	}
	tree := &Tree{Root: root, ModulePath: modulePath}

	var errs []error
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			name := d.Name()
			if name == "testdata" || name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
				return filepath.SkipDir
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !selected(filepath.ToSlash(rel), opts) || !hasGoFiles(path) {
			return nil
		}

		modRel, err := filepath.Rel(modRoot, path)
		if err != nil {
			return err
		}
		pkg, err := ScanPackage(path, ImportPath(modulePath, modRel))
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if pkg.Name != "" || pkg.Generated {
			tree.Packages = append(tree.Packages, pkg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tree, nil
}

// ScriptCount returns the number of scripts across all packages.
func (t *Tree) ScriptCount() int {
	n := 0
	for _, p := range t.Packages {
		n += len(p.Scripts)
	}
	return n
}

func selected(rel string, opts TreeOptions) bool {
	for _, p := range opts.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	if len(opts.Include) == 0 {
		return true
	}
	for _, p := range opts.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".go") && !strings.HasSuffix(e.Name(), "_test.go") {
			return true
		}
	}
	return false
}
