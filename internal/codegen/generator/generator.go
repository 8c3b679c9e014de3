package generator

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Alia5/scriptmeta/internal/codegen/scanner"
)

// ErrStale is returned by Run in check mode when generated files are out of
// date.
var ErrStale = errors.New("generated files are out of date")

// Options configures a generator run.
type Options struct {
	Root     string
	Include  []string
	Exclude  []string
	Registry string // registry table file relative to Root, empty to skip
	Check    bool   // report differences instead of writing
}

// Result lists what a run changed, or in check mode would change.
type Result struct {
	Packages int
	Scripts  int
	Written  []string
	Removed  []string
}

// Changed reports whether the run touched any file.
func (r *Result) Changed() bool { return len(r.Written)+len(r.Removed) > 0 }

type Generator struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Generator {
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// Run scans the tree and brings every generated file up to date.
func (g *Generator) Run() (*Result, error) {
	g.logger.Debug("Scanning for scripts", "root", g.opts.Root, "include", g.opts.Include, "exclude", g.opts.Exclude)
	tree, err := scanner.ScanTree(scanner.TreeOptions{
		Root:    g.opts.Root,
		Include: g.opts.Include,
		Exclude: g.opts.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("scan scripts: %w", err)
	}
	g.logger.Info("Scanned packages", "module", tree.ModulePath, "packages", len(tree.Packages), "scripts", tree.ScriptCount())

	res := &Result{Scripts: tree.ScriptCount()}
	var registered []*scanner.Package
	for _, pkg := range tree.Packages {
		path := filepath.Join(pkg.Dir, scanner.GeneratedFile)
		if len(pkg.Scripts) == 0 {
			if pkg.Generated {
				if err := g.remove(path, res); err != nil {
					return nil, err
				}
			}
			continue
		}
		res.Packages++

		src, err := RenderPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", pkg.ImportPath, err)
		}
		if err := g.write(path, src, res); err != nil {
			return nil, err
		}
		for _, s := range pkg.Scripts {
			g.logger.Debug("Script", "symbol", s.Symbol, "name", s.Name, "params", len(s.Params))
		}

		if pkg.Name == "main" {
			g.logger.Warn("Package main cannot be linked from the registry table", "dir", pkg.Dir)
			continue
		}
		registered = append(registered, pkg)
	}

	if g.opts.Registry != "" {
		if err := g.writeRegistry(tree, registered, res); err != nil {
			return nil, err
		}
	}

	if g.opts.Check && res.Changed() {
		return res, ErrStale
	}
	return res, nil
}

func (g *Generator) writeRegistry(tree *scanner.Tree, pkgs []*scanner.Package, res *Result) error {
	path := filepath.Join(tree.Root, g.opts.Registry)
	dir := filepath.Dir(path)

	var imports []string
	for _, p := range pkgs {
		if filepath.Clean(p.Dir) == filepath.Clean(dir) {
			continue
		}
		imports = append(imports, p.ImportPath)
	}
	sort.Strings(imports)

	src, err := RenderRegistry(packageNameFor(dir), imports)
	if err != nil {
		return fmt.Errorf("render registry: %w", err)
	}
	if err := g.write(path, src, res); err != nil {
		return err
	}
	g.logger.Info("Registry table", "path", path, "packages", len(imports))
	return nil
}

func (g *Generator) write(path string, src []byte, res *Result) error {
	old, err := os.ReadFile(path)
	if err == nil && bytes.Equal(old, src) {
		return nil
	}
	res.Written = append(res.Written, path)
	if g.opts.Check {
		g.logger.Warn("Out of date", "path", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	g.logger.Info("Generated", "path", path)
	return nil
}

func (g *Generator) remove(path string, res *Result) error {
	res.Removed = append(res.Removed, path)
	if g.opts.Check {
		g.logger.Warn("Stale generated file", "path", path)
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	g.logger.Info("Removed stale generated file", "path", path)
	return nil
}
