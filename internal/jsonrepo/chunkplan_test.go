package jsonrepo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostreetar/ostree-tar/ostreetar"
)

func TestDecodeChunk(t *testing.T) {
	chunk, err := DecodeChunk(strings.NewReader(`{
		"entries": [
			{"checksum": "aa", "size": 3, "paths": ["usr/bin/a"]}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, chunk.Entries, 1)
	require.Equal(t, "aa", chunk.Entries[0].Checksum)
	require.Equal(t, []string{"usr/bin/a"}, chunk.Entries[0].Paths)
}

func TestDecodeChunkPlan(t *testing.T) {
	plan, err := DecodeChunkPlan(strings.NewReader(`{
		"metadataInventory": [
			{"type": "dirtree", "checksum": "aa"},
			{"type": "dirmeta", "checksum": "bb"}
		],
		"residual": {
			"entries": [{"checksum": "cc", "size": 1, "paths": ["etc/b"]}]
		}
	}`))
	require.NoError(t, err)

	inventory := plan.MetadataInventory()
	require.Len(t, inventory, 2)
	require.Equal(t, ostreetar.ObjectDirTree, inventory[0].Type)
	require.Equal(t, ostreetar.ObjectDirMeta, inventory[1].Type)

	residual := plan.ResidualChunk()
	require.Len(t, residual.Entries, 1)
	require.Equal(t, "cc", residual.Entries[0].Checksum)
}

func TestDecodeChunkPlanRejectsUnknownType(t *testing.T) {
	_, err := DecodeChunkPlan(strings.NewReader(`{
		"metadataInventory": [{"type": "bogus", "checksum": "aa"}],
		"residual": {"entries": []}
	}`))
	require.Error(t, err)
}

func TestLoadChunkRejectsMissingFile(t *testing.T) {
	_, err := LoadChunk("/nonexistent/chunk.json")
	require.Error(t, err)
}

func TestLoadChunkPlanRejectsMissingFile(t *testing.T) {
	_, err := LoadChunkPlan("/nonexistent/plan.json")
	require.Error(t, err)
}
