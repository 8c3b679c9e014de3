package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/Alia5/scriptmeta/internal/codegen/scanner"
	"github.com/Alia5/scriptmeta/meta"
)

// MetaImportPath is the package generated files register with.
const MetaImportPath = "github.com/Alia5/scriptmeta/meta"

const header = "// Code generated by scriptmeta gen. DO NOT EDIT.\n\n"

var funcs = template.FuncMap{
	"quote":   strconv.Quote,
	"varName": func(ident string) string { return "scriptmeta_" + ident },
	"typeConst": func(t meta.ParamType) string {
		return "Type" + string(t)
	},
	"metaImport": func() string { return strconv.Quote(MetaImportPath) },
}

var packageTmpl = template.Must(template.New("package").Funcs(funcs).Parse(header + `package {{.Name}}

import scriptmeta {{metaImport}}

func init() {
{{- range .Scripts}}
	scriptmeta.Submit(scriptmeta.ScriptInventory{Script: &{{varName .Ident}}})
{{- end}}
}
{{range .Scripts}}
var {{varName .Ident}} = scriptmeta.ScriptMetaStatic{
	Name:   {{quote .Name}},
	Symbol: {{quote .Symbol}},
{{- if .Params}}
	Params: []scriptmeta.ParamMetaStatic{
{{- range .Params}}
		{Key: {{quote .Key}}, Label: {{quote .Label}}, Ty: scriptmeta.{{typeConst .Type}}{{with .Default}}, Default: scriptmeta.OptText{Text: {{quote .}}, Set: true}{{end}}},
{{- end}}
	},
{{- end}}
}
{{end}}`))

var registryTmpl = template.Must(template.New("registry").Funcs(funcs).Parse(header + `package {{.Name}}
{{if .Imports}}
import (
{{- range .Imports}}
	_ {{quote .}}
{{- end}}
)
{{end}}`))

// RenderPackage returns the gofmt'd registration file for pkg.
func RenderPackage(pkg *scanner.Package) ([]byte, error) {
	for _, s := range pkg.Scripts {
		for _, p := range s.Params {
			if !p.Type.Valid() {
				return nil, fmt.Errorf("%s: param %q: unknown type %q", s.Symbol, p.Key, p.Type)
			}
		}
	}
	return render(packageTmpl, pkg)
}

// RenderRegistry returns the gofmt'd registry table: one blank import per
// package that registers scripts.
func RenderRegistry(pkgName string, imports []string) ([]byte, error) {
	return render(registryTmpl, struct {
		Name    string
		Imports []string
	}{pkgName, imports})
}

func render(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// packageNameFor derives a package name from a directory name.
func packageNameFor(dir string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, filepath.Base(dir))
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "_" + name
	}
	return name
}
