package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ernie/doom-tools/internal/wad"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func buildArchive(t *testing.T, build func(b *wad.Builder)) *wad.Archive {
	t.Helper()
	b := wad.NewBuilder()
	build(b)
	a, err := wad.Decode(b.Bytes())
	require.NoError(t, err)
	return a
}

func TestIndexAndQuery(t *testing.T) {
	c := openTestCatalog(t)

	a := buildArchive(t, func(b *wad.Builder) {
		require.NoError(t, b.AddLump("DEMO1", []byte{1, 2, 3}))
		require.NoError(t, b.AddEmptyMap("MAP01"))
	})
	require.NoError(t, c.Index("doom1.wad", a))

	wads, err := c.Wads()
	require.NoError(t, err)
	require.Len(t, wads, 1)
	assert.Equal(t, "doom1.wad", wads[0].Path)
	assert.Equal(t, wad.MagicPWAD, wads[0].Magic)
	assert.Equal(t, 12, wads[0].LumpCount) // DEMO1 + marker + 10 roles
	assert.Equal(t, 1, wads[0].Maps)

	lumps, err := c.FindLumps("DEMO1")
	require.NoError(t, err)
	require.Len(t, lumps, 1)
	assert.Equal(t, 3, lumps[0].Size)
	assert.Len(t, lumps[0].Digest, 64) // hex BLAKE2b-256
}

func TestIndexReplacesPreviousEntry(t *testing.T) {
	c := openTestCatalog(t)

	first := buildArchive(t, func(b *wad.Builder) {
		require.NoError(t, b.AddLump("DEMO1", []byte{1}))
		require.NoError(t, b.AddEmptyMap("MAP01"))
	})
	require.NoError(t, c.Index("same.wad", first))

	second := buildArchive(t, func(b *wad.Builder) {
		require.NoError(t, b.AddLump("DEMO2", []byte{2}))
	})
	require.NoError(t, c.Index("same.wad", second))

	wads, err := c.Wads()
	require.NoError(t, err)
	require.Len(t, wads, 1)
	assert.Equal(t, 1, wads[0].LumpCount)
	assert.Equal(t, 0, wads[0].Maps, "map rows from the replaced index must not survive")

	lumps, err := c.FindLumps("DEMO1")
	require.NoError(t, err)
	assert.Empty(t, lumps, "lump rows from the replaced index must not survive")
	lumps, err = c.FindLumps("DEMO2")
	require.NoError(t, err)
	assert.Len(t, lumps, 1)
}

func TestDuplicatesAcrossArchives(t *testing.T) {
	c := openTestCatalog(t)

	payload := []byte("shared flat content")
	a := buildArchive(t, func(b *wad.Builder) {
		require.NoError(t, b.AddLump("FLAT1", payload))
	})
	b := buildArchive(t, func(b *wad.Builder) {
		require.NoError(t, b.AddLump("FLAT1", payload))
		require.NoError(t, b.AddLump("FLAT2", []byte("unique")))
	})
	require.NoError(t, c.Index("a.wad", a))
	require.NoError(t, c.Index("b.wad", b))

	dupes, err := c.Duplicates()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"FLAT1": 2}, dupes)
}
