package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testManifest = `{
  "refs": {"main": "commitcommitcommitcommitcommitcommitcommitcommitcommitcommit01"},
  "commits": {
    "commitcommitcommitcommitcommitcommitcommitcommitcommitcommit01": {
      "rootTreeChecksum": "treetreetreetreetreetreetreetreetreetreetreetreetreetreetree01",
      "rootMetaChecksum": "metametametametametametametametametametametametametametamet01"
    }
  },
  "dirMetas": {
    "metametametametametametametametametametametametametametamet01": {"uid": 0, "gid": 0, "mode": 16877}
  },
  "dirTrees": {
    "treetreetreetreetreetreetreetreetreetreetreetreetreetreetree01": {"files": [], "subdirs": []}
  },
  "files": {}
}`

func resetExportFlags() {
	exportRepoPath = ""
	exportOut = ""
	exportFormatVersion = 0
	exportIgnoreXattrs = false
	exportChunkPath = ""
	exportFinalChunk = ""
	configPathArg = ""
}

func TestExportCommandFullExport(t *testing.T) {
	resetExportFlags()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0o644))

	outPath := filepath.Join(dir, "out.tar")
	exportRepoPath = manifestPath
	exportOut = outPath

	cmd := exportCmd
	require.NoError(t, cmd.Flags().Set("format-version", "1"))
	require.NoError(t, runExport(cmd, []string{"main"}))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportCommandRequiresRepo(t *testing.T) {
	resetExportFlags()
	err := runExport(exportCmd, []string{"main"})
	require.Error(t, err)
}

func TestExportCommandChunkAndFinalChunkMutuallyExclusive(t *testing.T) {
	resetExportFlags()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0o644))
	exportRepoPath = manifestPath
	exportChunkPath = "chunk.json"
	exportFinalChunk = "plan.json"

	err := runExport(exportCmd, []string{"main"})
	require.Error(t, err)
}

func TestRootCommandVersionFlag(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"--version"})
	require.NoError(t, RootCmd.Execute())
}
