// Package jsonrepo adapts a single JSON manifest file to the
// ostreetar.Repository interface. Reading a real on-disk OSTree repository
// (resolving refs against sysroot/ostree/refs, parsing GVariant commit,
// dirtree and dirmeta objects, opening loose objects by checksum) is
// outside this module's scope; this package exists so the CLI and its
// fixtures have a concrete, inspectable Repository to drive without
// depending on a real OSTree installation.
//
// The manifest format is deliberately flat: every object the commit graph
// can reference is named by its checksum in a top-level map, content
// bytes are inlined as base64, and xattrs are the same flat byte blob the
// core package already treats as opaque.
package jsonrepo

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ostreetar/ostree-tar/ostreetar"
)

// FileRecord describes one content object in a manifest.
type FileRecord struct {
	Mode          uint32 `json:"mode"`
	Uid           uint32 `json:"uid"`
	Gid           uint32 `json:"gid"`
	Type          string `json:"type"` // "regular" or "symlink"
	SymlinkTarget string `json:"symlinkTarget,omitempty"`
	DataBase64    string `json:"dataBase64,omitempty"`
	XattrsBase64  string `json:"xattrsBase64,omitempty"`
}

// DirMetaRecord describes one dirmeta object.
type DirMetaRecord struct {
	Uid          uint32 `json:"uid"`
	Gid          uint32 `json:"gid"`
	Mode         uint32 `json:"mode"`
	XattrsBase64 string `json:"xattrsBase64,omitempty"`
}

// DirTreeEntryRecord is one (name, checksum) pair in a dirtree's files list.
type DirTreeEntryRecord struct {
	Name     string `json:"name"`
	Checksum string `json:"checksum"`
}

// DirTreeSubdirRecord is one (name, tree, meta) tuple in a dirtree's subdirs.
type DirTreeSubdirRecord struct {
	Name         string `json:"name"`
	TreeChecksum string `json:"treeChecksum"`
	MetaChecksum string `json:"metaChecksum"`
}

// DirTreeRecord describes one dirtree object.
type DirTreeRecord struct {
	Files   []DirTreeEntryRecord  `json:"files"`
	Subdirs []DirTreeSubdirRecord `json:"subdirs"`
}

// CommitRecord describes one commit object.
type CommitRecord struct {
	RootTreeChecksum string `json:"rootTreeChecksum"`
	RootMetaChecksum string `json:"rootMetaChecksum"`
	DetachedBase64   string `json:"detachedBase64,omitempty"`
}

// Manifest is the on-disk JSON shape this package loads.
type Manifest struct {
	Refs     map[string]string        `json:"refs"`
	Commits  map[string]CommitRecord  `json:"commits"`
	DirMetas map[string]DirMetaRecord `json:"dirMetas"`
	DirTrees map[string]DirTreeRecord `json:"dirTrees"`
	Files    map[string]FileRecord    `json:"files"`
}

// Repository implements ostreetar.Repository over an in-memory Manifest.
type Repository struct {
	manifest Manifest
}

// Load reads and parses a manifest file at path.
func Load(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jsonrepo: opening manifest: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a manifest document from r.
func Decode(r io.Reader) (*Repository, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("jsonrepo: decoding manifest: %w", err)
	}
	return &Repository{manifest: m}, nil
}

func (r *Repository) RequireRev(ref string) (string, error) {
	if checksum, ok := r.manifest.Refs[ref]; ok {
		return checksum, nil
	}
	if _, ok := r.manifest.Commits[ref]; ok {
		return ref, nil
	}
	return "", fmt.Errorf("jsonrepo: unknown ref %q", ref)
}

func (r *Repository) LoadCommit(checksum string) (ostreetar.Commit, error) {
	c, ok := r.manifest.Commits[checksum]
	if !ok {
		return ostreetar.Commit{}, fmt.Errorf("jsonrepo: unknown commit %q", checksum)
	}
	return ostreetar.Commit{
		Checksum:         checksum,
		RootTreeChecksum: c.RootTreeChecksum,
		RootMetaChecksum: c.RootMetaChecksum,
	}, nil
}

func (r *Repository) ReadCommitDetachedMetadata(checksum string) ([]byte, error) {
	c, ok := r.manifest.Commits[checksum]
	if !ok {
		return nil, fmt.Errorf("jsonrepo: unknown commit %q", checksum)
	}
	if c.DetachedBase64 == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(c.DetachedBase64)
}

func (r *Repository) LoadDirMeta(checksum string) (ostreetar.DirMeta, error) {
	m, ok := r.manifest.DirMetas[checksum]
	if !ok {
		return ostreetar.DirMeta{}, fmt.Errorf("jsonrepo: unknown dirmeta %q", checksum)
	}
	xattrs, err := decodeOptional(m.XattrsBase64)
	if err != nil {
		return ostreetar.DirMeta{}, fmt.Errorf("jsonrepo: dirmeta %q xattrs: %w", checksum, err)
	}
	return ostreetar.DirMeta{Uid: m.Uid, Gid: m.Gid, Mode: m.Mode, Xattrs: xattrs}, nil
}

func (r *Repository) LoadDirTree(checksum string) (ostreetar.DirTree, error) {
	t, ok := r.manifest.DirTrees[checksum]
	if !ok {
		return ostreetar.DirTree{}, fmt.Errorf("jsonrepo: unknown dirtree %q", checksum)
	}
	tree := ostreetar.DirTree{
		Files:   make([]ostreetar.DirTreeEntry, len(t.Files)),
		Subdirs: make([]ostreetar.DirTreeSubdir, len(t.Subdirs)),
	}
	for i, f := range t.Files {
		tree.Files[i] = ostreetar.DirTreeEntry{Name: f.Name, Checksum: f.Checksum}
	}
	for i, d := range t.Subdirs {
		tree.Subdirs[i] = ostreetar.DirTreeSubdir{
			Name:         d.Name,
			TreeChecksum: d.TreeChecksum,
			MetaChecksum: d.MetaChecksum,
		}
	}
	return tree, nil
}

func (r *Repository) LoadFile(checksum string) (io.ReadCloser, ostreetar.FileMeta, []byte, error) {
	f, ok := r.manifest.Files[checksum]
	if !ok {
		return nil, ostreetar.FileMeta{}, nil, fmt.Errorf("jsonrepo: unknown file %q", checksum)
	}
	xattrs, err := decodeOptional(f.XattrsBase64)
	if err != nil {
		return nil, ostreetar.FileMeta{}, nil, fmt.Errorf("jsonrepo: file %q xattrs: %w", checksum, err)
	}

	meta := ostreetar.FileMeta{Uid: f.Uid, Gid: f.Gid, Mode: f.Mode, SymlinkTarget: f.SymlinkTarget}
	switch f.Type {
	case "symlink":
		meta.Type = ostreetar.FileSymlink
		return nil, meta, xattrs, nil
	case "regular", "":
		meta.Type = ostreetar.FileRegular
		data, err := decodeOptional(f.DataBase64)
		if err != nil {
			return nil, ostreetar.FileMeta{}, nil, fmt.Errorf("jsonrepo: file %q data: %w", checksum, err)
		}
		meta.Size = int64(len(data))
		return io.NopCloser(bytes.NewReader(data)), meta, xattrs, nil
	default:
		meta.Type = ostreetar.FileOther
		return nil, meta, xattrs, nil
	}
}

func decodeOptional(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}
