package depm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAppendAndFind(t *testing.T) {
	r := NewRegistry()
	a := NewModule("a", ".")
	b := NewModule("b", ".")

	idxA := r.Append(a, 0)
	idxB := r.Append(b, 1)

	assert.Equal(t, 2, r.Len())
	assert.Same(t, a, r.Module(idxA))
	assert.Same(t, b, r.Module(idxB))

	found, ok := r.Find("b")
	require.True(t, ok)
	assert.Equal(t, idxB, found)

	_, ok = r.Find("nonexistent")
	assert.False(t, ok)
}

// TestRegistryLiftRaisesTransitiveImports covers the import-cycle
// short-circuit: discovering a longer path to a module already in the
// registry must lift both it and everything it imports to stay consistent
// with "depth is the longest import distance from any root".
func TestRegistryLiftRaisesTransitiveImports(t *testing.T) {
	r := NewRegistry()
	c := NewModule("c", ".")
	b := NewModule("b", ".")
	a := NewModule("a", ".")

	idxC := r.Append(c, 2)
	idxB := r.Append(b, 1)
	idxA := r.Append(a, 0)

	b.Imported = append(b.Imported, idxC)
	a.Imported = append(a.Imported, idxB)

	r.Lift(idxA, 5)

	assert.Equal(t, 5, r.Depth(idxA))
	assert.GreaterOrEqual(t, r.Depth(idxB), 6)
	assert.GreaterOrEqual(t, r.Depth(idxC), 7)
}

func TestRegistryLiftIsNoopWhenAlreadyDeeper(t *testing.T) {
	r := NewRegistry()
	a := NewModule("a", ".")
	idx := r.Append(a, 4)

	r.Lift(idx, 1)
	assert.Equal(t, 4, r.Depth(idx))
}

func TestLoadManifestUsesDeclaredName(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(`name = "widgets"`+"\n"), 0o644)
	require.NoError(t, err)

	name, ok, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "widgets", name)
}

func TestLoadManifestMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()

	name, ok, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", name)
}

func TestLoadManifestMissingNameIsAnError(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("\n"), 0o644)
	require.NoError(t, err)

	_, _, err = LoadManifest(dir)
	assert.Error(t, err)
}

func TestModuleConstructorInitializesTables(t *testing.T) {
	m := NewModule("mod", "/src")
	assert.Equal(t, "mod", m.Name)
	assert.NotNil(t, m.Classes)
	assert.NotNil(t, m.Functions)
	assert.Empty(t, m.Imported)
}
