package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResolvesRoots(t *testing.T) {
	base := t.TempDir()

	cfg, err := Default(base)
	require.NoError(t, err)

	assert.Equal(t, base, cfg.BaseDir)
	assert.Equal(t, []string{
		filepath.Join(base, "nucleus"),
		filepath.Join(base, "resources", "shaders"),
		filepath.Join(base, "tests", "unit"),
	}, cfg.Roots)
	assert.Equal(t, []string{".c", ".cc", ".cpp", ".h", ".hpp", ".glsl"}, cfg.Included)
	assert.Equal(t, []string{".l.cpp", ".y.cpp", ".y.hpp"}, cfg.Excluded)
	assert.Positive(t, cfg.Jobs)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultRelativeBase(t *testing.T) {
	dir := t.TempDir()
	tools := filepath.Join(dir, "tools")
	require.NoError(t, os.MkdirAll(tools, 0o755))
	t.Chdir(tools)

	cfg, err := Default("")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(cfg.BaseDir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDefaultCopiesExtensionSets(t *testing.T) {
	cfg, err := Default(t.TempDir())
	require.NoError(t, err)

	cfg.Included[0] = ".zzz"
	assert.Equal(t, ".c", Included[0])
}

func TestValidate(t *testing.T) {
	t.Run("no roots", func(t *testing.T) {
		err := Config{Included: Included, Jobs: 1}.Validate()
		assert.ErrorContains(t, err, "no root directories")
	})
	t.Run("no extensions", func(t *testing.T) {
		err := Config{Roots: []string{"/x"}, Jobs: 1}.Validate()
		assert.ErrorContains(t, err, "no included extensions")
	})
	t.Run("bad jobs", func(t *testing.T) {
		err := Config{Roots: []string{"/x"}, Included: Included}.Validate()
		assert.ErrorContains(t, err, "jobs must be positive")
	})
}
