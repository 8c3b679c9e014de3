package generator

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/scriptmeta/internal/codegen/scanner"
	"github.com/Alia5/scriptmeta/meta"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const movementSrc = `package movement

//scriptmeta:script
//scriptmeta:param key=speed label="Speed" type=F64 default="4.5"
//scriptmeta:param key=jump label="Can Jump" type=Bool
type Walker struct{}

//scriptmeta:script name="Spin Forever"
func Spin() {}
`

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["go.mod"] = "module example.com/game\n\ngo 1.25\n"
	for name, src := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	return root
}

func TestRunGenerates(t *testing.T) {
	root := writeModule(t, map[string]string{
		"movement/movement.go": movementSrc,
		"plain/plain.go":       "package plain\n",
	})
	gen := New(Options{Root: root, Registry: "internal/registry/scripts.go"}, discardLogger())

	res, err := gen.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Packages)
	assert.Equal(t, 2, res.Scripts)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "movement", scanner.GeneratedFile),
		filepath.Join(root, "internal", "registry", "scripts.go"),
	}, res.Written)

	assert.NoFileExists(t, filepath.Join(root, "plain", scanner.GeneratedFile))

	data, err := os.ReadFile(filepath.Join(root, "movement", scanner.GeneratedFile))
	require.NoError(t, err)
	src := string(data)
	assert.True(t, strings.HasPrefix(src, "// Code generated by scriptmeta gen. DO NOT EDIT.\n\npackage movement\n"))
	assert.Contains(t, src, `scriptmeta.Submit(scriptmeta.ScriptInventory{Script: &scriptmeta_Walker})`)
	assert.Contains(t, src, `Symbol: "example.com/game/movement.Walker",`)
	assert.Contains(t, src, `Name:   "Spin Forever",`)
	assert.Contains(t, src, `{Key: "speed", Label: "Speed", Ty: scriptmeta.TypeF64, Default: scriptmeta.OptText{Text: "4.5", Set: true}},`)
	assert.Contains(t, src, `{Key: "jump", Label: "Can Jump", Ty: scriptmeta.TypeBool},`)

	reg, err := os.ReadFile(filepath.Join(root, "internal", "registry", "scripts.go"))
	require.NoError(t, err)
	assert.Contains(t, string(reg), "package registry\n")
	assert.Contains(t, string(reg), `_ "example.com/game/movement"`)
	assert.NotContains(t, string(reg), "example.com/game/plain")

	// A second run and a check run find nothing to do.
	res, err = gen.Run()
	require.NoError(t, err)
	assert.False(t, res.Changed())

	check := New(Options{Root: root, Registry: "internal/registry/scripts.go", Check: true}, discardLogger())
	_, err = check.Run()
	assert.NoError(t, err)
}

func TestRunCheckDetectsStale(t *testing.T) {
	root := writeModule(t, map[string]string{"movement/movement.go": movementSrc})
	_, err := New(Options{Root: root}, discardLogger()).Run()
	require.NoError(t, err)

	genPath := filepath.Join(root, "movement", scanner.GeneratedFile)
	before, err := os.ReadFile(genPath)
	require.NoError(t, err)

	edited := strings.Replace(movementSrc, `"Spin Forever"`, `"Spin Slowly"`, 1)
	require.NoError(t, os.WriteFile(filepath.Join(root, "movement", "movement.go"), []byte(edited), 0o644))

	res, err := New(Options{Root: root, Check: true}, discardLogger()).Run()
	assert.ErrorIs(t, err, ErrStale)
	require.NotNil(t, res)
	assert.Equal(t, []string{genPath}, res.Written)

	after, err := os.ReadFile(genPath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "check mode must not write")
}

func TestRunRemovesStaleFiles(t *testing.T) {
	root := writeModule(t, map[string]string{
		"old/old.go":             "package old\n",
		"old/scriptmeta_gen.go":  "// Code generated by scriptmeta gen. DO NOT EDIT.\n\npackage old\n",
		"gone/scriptmeta_gen.go": "// Code generated by scriptmeta gen. DO NOT EDIT.\n\npackage gone\n",
		"movement/movement.go":   movementSrc,
	})

	res, err := New(Options{Root: root}, discardLogger()).Run()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "old", scanner.GeneratedFile),
		filepath.Join(root, "gone", scanner.GeneratedFile),
	}, res.Removed)
	assert.NoFileExists(t, filepath.Join(root, "old", scanner.GeneratedFile))
	assert.NoFileExists(t, filepath.Join(root, "gone", scanner.GeneratedFile))
}

func TestRunReportsDirectiveErrors(t *testing.T) {
	root := writeModule(t, map[string]string{
		"bad/bad.go": "package bad\n\n//scriptmeta:script\nconst C = 1\n",
	})
	_, err := New(Options{Root: root}, discardLogger()).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.go:3:1")
	assert.NoFileExists(t, filepath.Join(root, "bad", scanner.GeneratedFile))
}

func TestRunSkipsMainInRegistry(t *testing.T) {
	root := writeModule(t, map[string]string{
		"cmd/tool/main.go": "package main\n\n//scriptmeta:script\nfunc Tool() {}\n\nfunc main() {}\n",
	})
	_, err := New(Options{Root: root, Registry: "registry/registry.go"}, discardLogger()).Run()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "cmd", "tool", scanner.GeneratedFile))
	reg, err := os.ReadFile(filepath.Join(root, "registry", "registry.go"))
	require.NoError(t, err)
	assert.Equal(t, "// Code generated by scriptmeta gen. DO NOT EDIT.\n\npackage registry\n", string(reg))
}

func TestRenderPackageIsValidGo(t *testing.T) {
	pkg := &scanner.Package{
		Name:       "fx",
		ImportPath: "example.com/fx",
		Scripts: []scanner.ScriptDecl{
			{Ident: "Glow", Name: `Glow "bright"`, Symbol: "example.com/fx.Glow", Params: []scanner.ParamDecl{
				{Key: "c", Label: "Color\n", Type: meta.TypeColorRgba, Default: strPtr("")},
			}},
			{Ident: "fade", Name: "fade", Symbol: "example.com/fx.fade"},
		},
	}
	src, err := RenderPackage(pkg)
	require.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err)
	assert.Equal(t, "fx", f.Name.Name)

	var vars []string
	for _, d := range f.Decls {
		if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.VAR {
			vars = append(vars, gd.Specs[0].(*ast.ValueSpec).Names[0].Name)
		}
	}
	assert.Equal(t, []string{"scriptmeta_Glow", "scriptmeta_fade"}, vars)
	assert.Contains(t, string(src), `Default: scriptmeta.OptText{Text: "", Set: true}`)
	assert.Contains(t, string(src), `Label: "Color\n"`)

	again, err := RenderPackage(pkg)
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestRenderPackageRejectsUnknownType(t *testing.T) {
	_, err := RenderPackage(&scanner.Package{Name: "p", Scripts: []scanner.ScriptDecl{
		{Ident: "X", Symbol: "p.X", Params: []scanner.ParamDecl{{Key: "k", Type: "Quat"}}},
	}})
	assert.ErrorContains(t, err, `unknown type "Quat"`)
}

func TestPackageNameFor(t *testing.T) {
	assert.Equal(t, "registry", packageNameFor("internal/registry"))
	assert.Equal(t, "my_scripts", packageNameFor("my-scripts"))
	assert.Equal(t, "gen", packageNameFor("Gen"))
	assert.Equal(t, "_2d", packageNameFor("2d"))
}

func TestRelevant(t *testing.T) {
	reg := filepath.Join("root", "internal", "registry", "scripts.go")
	assert.True(t, relevant(filepath.Join("root", "a", "a.go"), reg))
	assert.False(t, relevant(filepath.Join("root", "a", "a_test.go"), reg))
	assert.False(t, relevant(filepath.Join("root", "a", scanner.GeneratedFile), reg))
	assert.False(t, relevant(filepath.Join("root", "a", "README.md"), reg))
	assert.False(t, relevant(reg, reg))
	assert.True(t, relevant(reg, ""))
}

func strPtr(s string) *string { return &s }

func TestWatchRegeneratesOnChange(t *testing.T) {
	root := writeModule(t, map[string]string{
		"movement/movement.go": movementSrc,
	})
	gen := New(Options{Root: root}, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- gen.Watch(ctx, 20*time.Millisecond) }()

	genPath := filepath.Join(root, "movement", scanner.GeneratedFile)
	require.Eventually(t, func() bool {
		_, err := os.Stat(genPath)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "initial run")

	extra := "package movement\n\n//scriptmeta:script\nfunc Hover() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "movement", "hover.go"), []byte(extra), 0o644))

	assert.Eventually(t, func() bool {
		src, err := os.ReadFile(genPath)
		return err == nil && strings.Contains(string(src), "example.com/game/movement.Hover")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchRejectsCheck(t *testing.T) {
	gen := New(Options{Root: t.TempDir(), Check: true}, discardLogger())
	assert.Error(t, gen.Watch(t.Context(), 0))
}
