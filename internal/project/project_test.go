package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unstruct/internal/layout"
)

func TestDocument_SaveLoadRoundTrip(t *testing.T) {
	doc := &Document{
		Name:         "client.exe",
		PointerWidth: 4,
		Nodes: []layout.Node{
			{ID: 1, Kind: layout.KindStruct, Name: "Player"},
			{ID: 2, Kind: layout.KindInt32, Name: "health", ParentID: 1, Offset: 0},
			{ID: 3, Kind: layout.KindPtr32, Name: "world", ParentID: 1, Offset: 4, RefID: 4},
			{ID: 4, Kind: layout.KindStruct, Name: "World", Offset: 0x100},
			{ID: 5, Kind: layout.KindArray, Name: "tiles", ParentID: 4, Offset: 0, Elem: layout.KindInt16, Count: 64},
		},
	}

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, doc.Save(path))

	got, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestLoad_KindsByName(t *testing.T) {
	// Documents store kinds as names, not numbers, so that reordering the
	// enum never corrupts saved projects.
	path := filepath.Join(t.TempDir(), "p.json")
	raw := `{
  "name": "demo",
  "nodes": [
    {"id": 1, "kind": "struct", "name": "S", "offset": 0},
    {"id": 2, "kind": "vec3", "name": "pos", "parent": 1, "offset": 0}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, layout.KindVec3, doc.Nodes[1].Kind)

	tree, err := doc.Tree()
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := Load(ctx, filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "reading project")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0644))
	_, err = Load(ctx, bad)
	assert.ErrorContains(t, err, "parsing project")

	unknown := filepath.Join(dir, "kind.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"nodes":[{"id":1,"kind":"interface","offset":0}]}`), 0644))
	_, err = Load(ctx, unknown)
	assert.ErrorContains(t, err, "unknown kind")

	width := filepath.Join(dir, "width.json")
	require.NoError(t, os.WriteFile(width, []byte(`{"pointer_width":16,"nodes":[]}`), 0644))
	_, err = Load(ctx, width)
	assert.ErrorIs(t, err, ErrBadPointerWidth)
}

func TestDocument_TreeRejectsBadNodes(t *testing.T) {
	doc := &Document{Nodes: []layout.Node{
		{ID: 1, Kind: layout.KindStruct},
		{ID: 1, Kind: layout.KindInt32, ParentID: 1},
	}}

	_, err := doc.Tree()
	assert.ErrorIs(t, err, layout.ErrDuplicateID)
}
