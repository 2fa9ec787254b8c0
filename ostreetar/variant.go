package ostreetar

import (
	"bytes"
	"encoding/binary"
)

// The functions in this file produce a stable, content-addressed byte
// encoding for a commit/dirmeta/dirtree object's own on-wire bytes. They are
// not OSTree's GVariant wire format: reproducing that format is the
// Repository's concern in a real integration, not this package's. What this
// package needs is only that the same logical object always serializes to
// the same bytes within a run, so the tar entry written for it is
// well-formed and its path-based dedup key stays meaningful.
//
// Each encoding is a flat sequence of length-prefixed fields, written with a
// fixed byte order so two processes given the same parsed object agree on
// the same bytes.

func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func putBytes(buf *bytes.Buffer, b []byte) {
	putUvarint(buf, uint64(len(b)))
	buf.Write(b)
}

func putString(buf *bytes.Buffer, s string) {
	putBytes(buf, []byte(s))
}

// commitPlaceholder encodes a commit's root pointers.
func commitPlaceholder(commit Commit) []byte {
	var buf bytes.Buffer
	putString(&buf, commit.RootTreeChecksum)
	putString(&buf, commit.RootMetaChecksum)
	return buf.Bytes()
}

// encodeDirMetaPlaceholder encodes a dirmeta's (uid, gid, mode, xattrs).
func encodeDirMetaPlaceholder(meta DirMeta) []byte {
	var buf bytes.Buffer
	putUvarint(&buf, uint64(meta.Uid))
	putUvarint(&buf, uint64(meta.Gid))
	putUvarint(&buf, uint64(meta.Mode))
	putBytes(&buf, meta.Xattrs)
	return buf.Bytes()
}

// encodeDirTreePlaceholder encodes a dirtree's (files, subdirs) in the
// caller-supplied order; callers are responsible for passing OSTree's own
// sorted order when one is required for checksum parity with a real
// repository, since this package treats the order it is given as
// authoritative.
func encodeDirTreePlaceholder(tree DirTree) []byte {
	var buf bytes.Buffer
	putUvarint(&buf, uint64(len(tree.Files)))
	for _, f := range tree.Files {
		putString(&buf, f.Name)
		putString(&buf, f.Checksum)
	}
	putUvarint(&buf, uint64(len(tree.Subdirs)))
	for _, d := range tree.Subdirs {
		putString(&buf, d.Name)
		putString(&buf, d.TreeChecksum)
		putString(&buf, d.MetaChecksum)
	}
	return buf.Bytes()
}
