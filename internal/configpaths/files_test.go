package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG lookup is unix only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "scriptmeta"), dir)
}

func TestDefaultConfigDirHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME lookup is unix only")
	}
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/dev")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", ".config", "scriptmeta"), dir)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "gen.json", FileName("gen", "json"))
	assert.Equal(t, "gen.yaml", FileName("gen", "yml"))
	assert.Equal(t, "export.toml", FileName("export", "toml"))
	assert.Equal(t, "export.json", FileName("export", ""))
}

func TestUserPathComesFirst(t *testing.T) {
	tests := []struct {
		path  string
		check func(t *testing.T, j, y, tm []string)
	}{
		{"custom.yml", func(t *testing.T, _, y, _ []string) { assert.Equal(t, "custom.yml", y[0]) }},
		{"custom.toml", func(t *testing.T, _, _, tm []string) { assert.Equal(t, "custom.toml", tm[0]) }},
		{"custom.json", func(t *testing.T, j, _, _ []string) { assert.Equal(t, "custom.json", j[0]) }},
		{"custom.conf", func(t *testing.T, j, _, _ []string) { assert.Equal(t, "custom.conf", j[0]) }},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			j, y, tm := ConfigCandidatePaths(tt.path)
			tt.check(t, j, y, tm)
		})
	}
}

func TestWorkingDirCandidates(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	j, y, tm := ConfigCandidatePaths("")
	assert.Contains(t, j, filepath.Join(dir, "scriptmeta.json"))
	assert.Contains(t, y, filepath.Join(dir, "gen.yml"))
	assert.Contains(t, tm, filepath.Join(dir, "export.toml"))
}

func TestEnsureDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "gen.json")
	require.NoError(t, EnsureDir(target))
	assert.DirExists(t, filepath.Dir(target))
}
