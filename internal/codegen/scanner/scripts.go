package scanner

import (
	"errors"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Alia5/scriptmeta/meta"
)

// GeneratedFile is the file name the generator writes into each package.
const GeneratedFile = "scriptmeta_gen.go"

// DeclKind is the kind of declaration a script directive is attached to.
type DeclKind string

const (
	KindFunc   DeclKind = "func"
	KindStruct DeclKind = "struct"
)

// ParamDecl is one parsed //scriptmeta:param directive.
type ParamDecl struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Type    meta.ParamType `json:"type"`
	Default *string        `json:"default,omitempty"`
}

// ScriptDecl is an annotated declaration.
type ScriptDecl struct {
	Ident  string         `json:"ident"`
	Kind   DeclKind       `json:"kind"`
	Name   string         `json:"name"`   // display name, defaults to Ident
	Symbol string         `json:"symbol"` // import path + "." + Ident
	Params []ParamDecl    `json:"params"`
	Pos    token.Position `json:"-"`
}

// Package holds the scripts declared in one directory.
type Package struct {
	Dir        string       `json:"dir"`
	ImportPath string       `json:"importPath"`
	Name       string       `json:"name"`
	Scripts    []ScriptDecl `json:"scripts"`
	Generated  bool         `json:"-"` // dir already holds a GeneratedFile
}

// ScanPackage parses the non-test Go files in dir and returns every
// annotated declaration in file name order, then source order. Misplaced or
// malformed directives are reported as *DirectiveError values, joined.
func ScanPackage(dir, importPath string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	pkg := &Package{Dir: dir, ImportPath: importPath}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if name == GeneratedFile {
			pkg.Generated = true
			continue
		}
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	fset := token.NewFileSet()
	var errs []error
	for _, name := range files {
		path := filepath.Join(dir, name)
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if ignored(f) {
			continue
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if pkg.Name != f.Name.Name {
			return nil, fmt.Errorf("%s: found packages %s and %s in %s", path, pkg.Name, f.Name.Name, dir)
		}

		scripts, err := scanFile(fset, f, importPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pkg.Scripts = append(pkg.Scripts, scripts...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pkg, nil
}

// ignored reports whether f is excluded from every build by "//go:build ignore".
func ignored(f *ast.File) bool {
	for _, g := range f.Comments {
		if g.Pos() > f.Package {
			break
		}
		for _, c := range g.List {
			if !constraint.IsGoBuild(c.Text) {
				continue
			}
			expr, err := constraint.Parse(c.Text)
			if err == nil && expr.String() == "ignore" {
				return true
			}
		}
	}
	return false
}

func scanFile(fset *token.FileSet, f *ast.File, importPath string) ([]ScriptDecl, error) {
	var (
		scripts  []ScriptDecl
		errs     []error
		attached = map[*ast.CommentGroup]bool{}
	)

	add := func(doc *ast.CommentGroup, ident string, kind DeclKind, unsupported string) {
		if doc == nil || !hasDirective(doc) {
			return
		}
		attached[doc] = true
		if unsupported != "" {
			errs = append(errs, &DirectiveError{
				Pos: fset.Position(firstDirective(doc).Slash),
				Msg: fmt.Sprintf("script directives only support struct types and top-level funcs, not %s", unsupported),
			})
			return
		}
		sd, err := parseDoc(fset, doc)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if sd == nil {
			return
		}
		sd.Ident = ident
		sd.Kind = kind
		sd.Pos = fset.Position(firstDirective(doc).Slash)
		if sd.Name == "" {
			sd.Name = ident
		}
		sd.Symbol = importPath + "." + ident
		scripts = append(scripts, *sd)
	}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv != nil {
				add(d.Doc, d.Name.Name, KindFunc, "method "+d.Name.Name)
				continue
			}
			add(d.Doc, d.Name.Name, KindFunc, "")
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				add(d.Doc, "", "", fmt.Sprintf("%s declarations", d.Tok))
				for _, spec := range d.Specs {
					if vs, ok := spec.(*ast.ValueSpec); ok {
						add(vs.Doc, "", "", fmt.Sprintf("%s declarations", d.Tok))
					}
				}
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && !d.Lparen.IsValid() {
					doc = d.Doc
				}
				if _, ok := ts.Type.(*ast.StructType); !ok {
					add(doc, ts.Name.Name, "", "non-struct type "+ts.Name.Name)
					continue
				}
				add(doc, ts.Name.Name, KindStruct, "")
			}
			if d.Lparen.IsValid() {
				add(d.Doc, "", "", "grouped type declarations")
			}
		}
	}

	for _, g := range f.Comments {
		if attached[g] || !hasDirective(g) {
			continue
		}
		errs = append(errs, &DirectiveError{
			Pos: fset.Position(firstDirective(g).Slash),
			Msg: "directive is not attached to a declaration",
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return scripts, nil
}
