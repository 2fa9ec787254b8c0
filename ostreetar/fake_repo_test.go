package ostreetar

import (
	"bytes"
	"fmt"
	"io"
)

// fakeRepo is an in-memory Repository used by every test in this package
// that needs one; it never touches disk and holds no state beyond what a
// test registers with its add* helpers.
type fakeRepo struct {
	commits  map[string]Commit
	dirMetas map[string]DirMeta
	dirTrees map[string]DirTree
	files    map[string]fakeFile
	detached map[string][]byte
	refs     map[string]string
}

type fakeFile struct {
	meta   FileMeta
	data   []byte
	xattrs []byte
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		commits:  make(map[string]Commit),
		dirMetas: make(map[string]DirMeta),
		dirTrees: make(map[string]DirTree),
		files:    make(map[string]fakeFile),
		detached: make(map[string][]byte),
		refs:     make(map[string]string),
	}
}

func (r *fakeRepo) addCommit(checksum string, c Commit) {
	r.commits[checksum] = c
}

func (r *fakeRepo) addDirMeta(checksum string, m DirMeta) {
	r.dirMetas[checksum] = m
}

func (r *fakeRepo) addDirTree(checksum string, t DirTree) {
	r.dirTrees[checksum] = t
}

func (r *fakeRepo) addFile(checksum string, meta FileMeta, data, xattrs []byte) {
	r.files[checksum] = fakeFile{meta: meta, data: data, xattrs: xattrs}
}

func (r *fakeRepo) addRef(ref, checksum string) {
	r.refs[ref] = checksum
}

func (r *fakeRepo) LoadCommit(checksum string) (Commit, error) {
	c, ok := r.commits[checksum]
	if !ok {
		return Commit{}, fmt.Errorf("fakeRepo: no commit %s", checksum)
	}
	return c, nil
}

func (r *fakeRepo) LoadDirMeta(checksum string) (DirMeta, error) {
	m, ok := r.dirMetas[checksum]
	if !ok {
		return DirMeta{}, fmt.Errorf("fakeRepo: no dirmeta %s", checksum)
	}
	return m, nil
}

func (r *fakeRepo) LoadDirTree(checksum string) (DirTree, error) {
	t, ok := r.dirTrees[checksum]
	if !ok {
		return DirTree{}, fmt.Errorf("fakeRepo: no dirtree %s", checksum)
	}
	return t, nil
}

func (r *fakeRepo) LoadFile(checksum string) (io.ReadCloser, FileMeta, []byte, error) {
	f, ok := r.files[checksum]
	if !ok {
		return nil, FileMeta{}, nil, fmt.Errorf("fakeRepo: no file %s", checksum)
	}
	if f.meta.Type != FileRegular {
		return nil, f.meta, f.xattrs, nil
	}
	return io.NopCloser(bytes.NewReader(f.data)), f.meta, f.xattrs, nil
}

func (r *fakeRepo) ReadCommitDetachedMetadata(checksum string) ([]byte, error) {
	return r.detached[checksum], nil
}

func (r *fakeRepo) RequireRev(ref string) (string, error) {
	c, ok := r.refs[ref]
	if !ok {
		return "", fmt.Errorf("fakeRepo: unknown rev %s", ref)
	}
	return c, nil
}
