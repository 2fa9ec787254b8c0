// Package ostreetar serializes an OSTree commit into a deterministic,
// uncompressed tar stream laid out as if the commit had been checked out,
// and patches the detached commit metadata of an already-produced stream.
//
// The package never reads or writes an OSTree repository directly; it is
// driven entirely through the Repository and ChunkPlanner interfaces below,
// which callers supply backed by a real repository implementation.
package ostreetar

import "io"

// ObjectType identifies the kind of an OSTree object for the purposes of
// object-path encoding and the four dedup sets.
type ObjectType int

const (
	ObjectCommit ObjectType = iota
	ObjectCommitMeta
	ObjectDirTree
	ObjectDirMeta
	ObjectFile
)

func (t ObjectType) String() string {
	switch t {
	case ObjectCommit:
		return "commit"
	case ObjectCommitMeta:
		return "commitmeta"
	case ObjectDirTree:
		return "dirtree"
	case ObjectDirMeta:
		return "dirmeta"
	case ObjectFile:
		return "file"
	default:
		return "unknown"
	}
}

// FileType is the type of a content object.
type FileType int

const (
	FileRegular FileType = iota
	FileSymlink
	// FileOther covers any OSTree content object type this package cannot
	// render (device nodes, fifos, ...); emitting one is a validation error.
	FileOther
)

// FileMeta is the metadata half of a content object (File in the data
// model).
type FileMeta struct {
	Uid           uint32
	Gid           uint32
	Mode          uint32 // full mode word, including S_IFMT bits
	Size          int64  // valid for FileRegular only
	Type          FileType
	SymlinkTarget string // valid for FileSymlink only
}

// DirMeta is a directory's (uid, gid, mode, xattrs) record.
type DirMeta struct {
	Uid    uint32
	Gid    uint32
	Mode   uint32
	Xattrs []byte
}

// DirTreeEntry is a single (name, content-checksum) pair in a dirtree's
// files list.
type DirTreeEntry struct {
	Name     string
	Checksum string
}

// DirTreeSubdir is a single (name, child-dirtree-checksum,
// child-dirmeta-checksum) tuple in a dirtree's subdirs list.
type DirTreeSubdir struct {
	Name         string
	TreeChecksum string
	MetaChecksum string
}

// DirTree is the parsed (files, subdirs) contents of a dirtree object.
type DirTree struct {
	Files   []DirTreeEntry
	Subdirs []DirTreeSubdir
}

// Commit carries the checksums of a commit's root dirtree and root dirmeta.
type Commit struct {
	Checksum         string
	RootTreeChecksum string
	RootMetaChecksum string
}

// MetadataInventoryEntry names one metadata object (dirtree or dirmeta) a
// ChunkPlanner wants carried in a final chunk.
type MetadataInventoryEntry struct {
	Type     ObjectType // ObjectDirTree or ObjectDirMeta
	Checksum string
}

// Chunk is an ordered mapping from content checksum to its size and the set
// of rendered paths it should be hardlinked at.
type Chunk struct {
	Entries []ChunkEntry
}

// ChunkEntry is one content object's contribution to a Chunk.
type ChunkEntry struct {
	Checksum string
	Size     int64
	Paths    []string
}

// Repository is the external collaborator this package reads OSTree state
// through. Implementations are expected to be backed by a real on-disk
// OSTree repository; this package treats it purely as a data source.
type Repository interface {
	// LoadCommit resolves a commit checksum to its root tree/meta pointers.
	LoadCommit(checksum string) (Commit, error)

	// LoadDirMeta loads and parses a dirmeta object.
	LoadDirMeta(checksum string) (DirMeta, error)

	// LoadDirTree loads and parses a dirtree object.
	LoadDirTree(checksum string) (DirTree, error)

	// LoadFile loads a content object's metadata, xattrs and (for regular
	// files) a readable stream of its content. The caller closes the
	// stream when non-nil.
	LoadFile(checksum string) (stream io.ReadCloser, meta FileMeta, xattrs []byte, err error)

	// ReadCommitDetachedMetadata returns a commit's detached metadata
	// blob, or nil if none is attached.
	ReadCommitDetachedMetadata(checksum string) ([]byte, error)

	// RequireRev resolves a ref to a commit checksum, failing if unknown.
	RequireRev(ref string) (string, error)
}

// ChunkPlanner produces the chunk assignments consumed by ExportChunk and
// ExportFinalChunk. Planning itself (how objects are grouped across layers)
// is out of scope for this package; it only consumes the result.
type ChunkPlanner interface {
	// MetadataInventory lists every dirtree/dirmeta object that must be
	// carried by the final chunk.
	MetadataInventory() []MetadataInventoryEntry

	// ResidualChunk is the content chunk carrying everything not assigned
	// to an earlier chunk.
	ResidualChunk() Chunk
}
