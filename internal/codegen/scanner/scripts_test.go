package scanner

import (
	"errors"
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/scriptmeta/meta"
)

func strPtr(s string) *string { return &s }

func TestScanPackage(t *testing.T) {
	pkg, err := ScanPackage(filepath.Join("testdata", "tree", "movement"), "example.com/tree/movement")
	require.NoError(t, err)
	assert.Equal(t, "movement", pkg.Name)
	assert.False(t, pkg.Generated)
	require.Len(t, pkg.Scripts, 3)

	idle, walker, spin := pkg.Scripts[0], pkg.Scripts[1], pkg.Scripts[2]

	assert.Equal(t, "Idle", idle.Name)
	assert.Equal(t, KindStruct, idle.Kind)
	assert.Empty(t, idle.Params)

	// default name is the identifier
	assert.Equal(t, "Walker", walker.Ident)
	assert.Equal(t, "Walker", walker.Name)
	assert.Equal(t, "example.com/tree/movement.Walker", walker.Symbol)
	assert.Equal(t, []ParamDecl{
		{Key: "speed", Label: "Speed", Type: meta.TypeF64, Default: strPtr("4.5")},
		{Key: "jump", Label: "Can Jump", Type: meta.TypeBool},
	}, walker.Params)
	assert.Equal(t, 5, walker.Pos.Line)

	// explicit name keeps the symbol of the declaration
	assert.Equal(t, "Spin Forever", spin.Name)
	assert.Equal(t, "example.com/tree/movement.Spin", spin.Symbol)
	assert.Equal(t, KindFunc, spin.Kind)
	assert.Equal(t, []ParamDecl{
		{Key: "axis", Label: "axis", Type: meta.TypeVec3, Default: strPtr("(0, 1, 0)")},
	}, spin.Params)
}

func TestScanPackageGroupedTypes(t *testing.T) {
	pkg, err := ScanPackage(filepath.Join("testdata", "tree", "lighting"), "example.com/tree/lighting")
	require.NoError(t, err)
	require.Len(t, pkg.Scripts, 1)
	f := pkg.Scripts[0]
	assert.Equal(t, "Flicker", f.Name)
	assert.Equal(t, []ParamDecl{
		{Key: "color", Label: "Color", Type: meta.TypeColorRgba, Default: strPtr("(1, 0.8, 0.2, 1)")},
		{Key: "rate", Label: "Rate (Hz)", Type: meta.TypeI64, Default: strPtr("12")},
		{Key: "tag", Label: "Tag", Type: meta.TypeString},
	}, f.Params)
}

func TestScanPackageOnlyGenerated(t *testing.T) {
	pkg, err := ScanPackage(filepath.Join("testdata", "tree", "stale"), "example.com/tree/stale")
	require.NoError(t, err)
	assert.True(t, pkg.Generated)
	assert.Empty(t, pkg.Scripts)
}

func scanSource(t *testing.T, src string) ([]ScriptDecl, error) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)
	return scanFile(fset, f, "example.com/p")
}

func TestScanFileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{
			name: "method",
			src:  "package p\ntype T struct{}\n//scriptmeta:script\nfunc (T) M() {}\n",
			line: 3,
			msg:  "script directives only support struct types and top-level funcs, not method M",
		},
		{
			name: "var",
			src:  "package p\n//scriptmeta:script\nvar V = 1\n",
			line: 2,
			msg:  "not var declarations",
		},
		{
			name: "const in group",
			src:  "package p\nconst (\n\t//scriptmeta:script\n\tC = 1\n)\n",
			line: 3,
			msg:  "not const declarations",
		},
		{
			name: "non-struct type",
			src:  "package p\n//scriptmeta:script\ntype N int\n",
			line: 2,
			msg:  "not non-struct type N",
		},
		{
			name: "floating",
			src:  "package p\n\n//scriptmeta:script\n\nfunc F() {}\n",
			line: 3,
			msg:  "directive is not attached to a declaration",
		},
		{
			name: "inside body",
			src:  "package p\nfunc F() {\n\t//scriptmeta:script\n}\n",
			line: 3,
			msg:  "directive is not attached to a declaration",
		},
		{
			name: "unsupported script argument",
			src:  "package p\n//scriptmeta:script title=\"x\"\nfunc F() {}\n",
			line: 2,
			msg:  `unsupported argument "title" (only name="..." is supported)`,
		},
		{
			name: "empty name",
			src:  "package p\n//scriptmeta:script name=\"\"\nfunc F() {}\n",
			line: 2,
			msg:  "name must not be empty",
		},
		{
			name: "duplicate script",
			src:  "package p\n//scriptmeta:script\n//scriptmeta:script\nfunc F() {}\n",
			line: 3,
			msg:  "duplicate script directive",
		},
		{
			name: "param first",
			src:  "package p\n//scriptmeta:param key=a type=Bool\n//scriptmeta:script\nfunc F() {}\n",
			line: 2,
			msg:  "param directive must follow a script directive",
		},
		{
			name: "unknown directive",
			src:  "package p\n//scriptmeta:scirpt\nfunc F() {}\n",
			line: 2,
			msg:  `unknown directive "scirpt"`,
		},
		{
			name: "missing key",
			src:  "package p\n//scriptmeta:script\n//scriptmeta:param type=Bool\nfunc F() {}\n",
			line: 3,
			msg:  "param is missing key",
		},
		{
			name: "missing type",
			src:  "package p\n//scriptmeta:script\n//scriptmeta:param key=a\nfunc F() {}\n",
			line: 3,
			msg:  `param "a" is missing type`,
		},
		{
			name: "unknown type",
			src:  "package p\n//scriptmeta:script\n//scriptmeta:param key=a type=Quat\nfunc F() {}\n",
			line: 3,
			msg:  `param "a" has unknown type "Quat"`,
		},
		{
			name: "duplicate param key",
			src:  "package p\n//scriptmeta:script\n//scriptmeta:param key=a type=Bool\n//scriptmeta:param key=a type=I64\nfunc F() {}\n",
			line: 4,
			msg:  `duplicate param key "a"`,
		},
		{
			name: "unsupported param argument",
			src:  "package p\n//scriptmeta:script\n//scriptmeta:param key=a type=Bool min=0\nfunc F() {}\n",
			line: 3,
			msg:  `unsupported param argument "min"`,
		},
		{
			name: "malformed arguments",
			src:  "package p\n//scriptmeta:script name=\"oops\nfunc F() {}\n",
			line: 2,
			msg:  `argument "name": unterminated string`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanSource(t, tt.src)
			require.Error(t, err)
			var de *DirectiveError
			require.True(t, errors.As(err, &de), "want *DirectiveError, got %T: %v", err, err)
			assert.Equal(t, tt.line, de.Pos.Line)
			assert.Contains(t, de.Msg, tt.msg)
		})
	}
}

func TestScanFileIgnoresOtherComments(t *testing.T) {
	src := "package p\n// scriptmeta:script is only a directive without the space\n/*scriptmeta:script*/\nfunc F() {}\n"
	scripts, err := scanSource(t, src)
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in      string
		want    []arg
		wantErr string
	}{
		{in: "", want: nil},
		{in: "  key=speed   type=F64 ", want: []arg{{"key", "speed"}, {"type", "F64"}}},
		{in: `label="Hello \"World\"" default=` + "`raw\\n`", want: []arg{{"label", `Hello "World"`}, {"default", `raw\n`}}},
		{in: `default=""`, want: []arg{{"default", ""}}},
		{in: "key", wantErr: `expected key=value, found "key"`},
		{in: "=x", wantErr: `expected key=value`},
		{in: "key= type=I64", wantErr: `argument "key" has no value`},
		{in: "key=a key=b", wantErr: `duplicate argument "key"`},
		{in: `label="x"y`, wantErr: "unexpected text after string"},
		{in: `label=a"b`, wantErr: "quote inside bare value"},
		{in: `label="\q"`, wantErr: "malformed string"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := splitArgs(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanFileTabSeparatedDirectives(t *testing.T) {
	src := "package p\n\n//scriptmeta:script\tname=\"Tabbed\"\n//scriptmeta:param\tkey=speed\ttype=F64\nfunc F() {}\n"
	scripts, err := scanSource(t, src)
	require.NoError(t, err)
	require.Len(t, scripts, 1)
	assert.Equal(t, "Tabbed", scripts[0].Name)
	require.Len(t, scripts[0].Params, 1)
	assert.Equal(t, "speed", scripts[0].Params[0].Key)
}

func TestSplitVerb(t *testing.T) {
	tests := []struct {
		in, verb, rest string
	}{
		{"script", "script", ""},
		{"script name=x", "script", "name=x"},
		{"param\tkey=a type=I64", "param", "key=a type=I64"},
		{"param \tkey=a", "param", "\tkey=a"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			verb, rest := splitVerb(tt.in)
			assert.Equal(t, tt.verb, verb)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
