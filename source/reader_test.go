package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/source"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(path, []byte("class A {}"), 0o644))

	r := source.NewReader()
	unit, err := r.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "class A {}", string(unit.Source))
}

func TestReadTree_OnlyJavaFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte("class A {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignore me"), 0o644))

	r := source.NewReader()
	units, err := r.ReadTree(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "class A {}", string(units[0].Source))
}
