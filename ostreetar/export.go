package ostreetar

import (
	"archive/tar"
	"context"
	"io"
	"strings"

	"github.com/ostreetar/ostree-tar/internal/exporterr"
)

// ExportOptions configures a single export run.
type ExportOptions struct {
	// FormatVersion selects the on-wire layout: 0 (legacy, dot-prefixed
	// paths, mode preserved verbatim) or 1 (bare paths, S_IFMT cleared).
	// Any other value is rejected at run start. ExportChunk and
	// ExportFinalChunk fix this to 1 themselves and ignore the field.
	FormatVersion int

	// IgnoreXattrs, when set, suppresses xattr emission entirely for every
	// content object in the run.
	IgnoreXattrs bool
}

func validateFormatVersion(v int) error {
	if v != 0 && v != 1 {
		return exporterr.Validation("unsupported format version %d", v)
	}
	return nil
}

// ExportCommit writes a full export of revision to w and finalizes the tar
// stream.
func ExportCommit(ctx context.Context, repo Repository, revision string, w io.Writer, opts ExportOptions) error {
	if err := validateFormatVersion(opts.FormatVersion); err != nil {
		return err
	}

	checksum, err := repo.RequireRev(revision)
	if err != nil {
		return exporterr.Lookup(revision, "resolving revision: %v", err)
	}
	commit, err := repo.LoadCommit(checksum)
	if err != nil {
		return exporterr.Lookup(checksum, "loading commit: %v", err)
	}
	detached, err := repo.ReadCommitDetachedMetadata(checksum)
	if err != nil {
		return exporterr.IO(checksum, "", err)
	}

	tw := tar.NewWriter(w)
	s := newRunState(ctx, tw, repo, opts)

	if err := s.writeCommit(commit, detached); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return exporterr.IO(checksum, "", err)
	}
	return nil
}

// ExportChunk emits the scaffold followed by one content chunk, always in
// v1. commit identifies the commit the chunk belongs to; this mode never
// walks a dirtree, so commit is carried only for parity with the exposed
// API surface and for a future planner to validate against.
func ExportChunk(ctx context.Context, repo Repository, commit string, chunk Chunk, w io.Writer) error {
	tw := tar.NewWriter(w)
	s := newRunState(ctx, tw, repo, ExportOptions{FormatVersion: 1})

	if err := s.writeScaffold(); err != nil {
		return err
	}
	if err := s.writeChunk(chunk); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return exporterr.IO(commit, "", err)
	}
	return nil
}

// ExportFinalChunk emits the scaffold, the commit object (and its
// CommitMeta if present), every object named by chunking's metadata
// inventory, and the residual content chunk, always in v1.
func ExportFinalChunk(ctx context.Context, repo Repository, commit string, chunking ChunkPlanner, w io.Writer) error {
	c, err := repo.LoadCommit(commit)
	if err != nil {
		return exporterr.Lookup(commit, "loading commit: %v", err)
	}
	detached, err := repo.ReadCommitDetachedMetadata(commit)
	if err != nil {
		return exporterr.IO(commit, "", err)
	}

	tw := tar.NewWriter(w)
	s := newRunState(ctx, tw, repo, ExportOptions{FormatVersion: 1})

	if err := s.writeScaffold(); err != nil {
		return err
	}
	if err := s.emitCommitObject(c, detached); err != nil {
		return err
	}

	for _, entry := range chunking.MetadataInventory() {
		if err := s.checkCancelled(); err != nil {
			return err
		}
		if err := s.emitInventoryEntry(entry); err != nil {
			return err
		}
	}

	if err := s.writeChunk(chunking.ResidualChunk()); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return exporterr.IO(commit, "", err)
	}
	return nil
}

// emitInventoryEntry writes a single caller-named metadata object, deduped
// the same way the commit walker dedups them.
func (s *runState) emitInventoryEntry(entry MetadataInventoryEntry) error {
	switch entry.Type {
	case ObjectDirTree:
		tree, err := s.repo.LoadDirTree(entry.Checksum)
		if err != nil {
			return exporterr.Lookup(entry.Checksum, "loading dirtree: %v", err)
		}
		if !s.dirTrees.addIfAbsent(entry.Checksum) {
			return nil
		}
		if err := defaultDataEntry(s.tw, objectPath(ObjectDirTree, entry.Checksum), encodeDirTreePlaceholder(tree)); err != nil {
			return err
		}
		s.stats.recordObject(ObjectDirTree)
		return nil
	case ObjectDirMeta:
		meta, err := s.repo.LoadDirMeta(entry.Checksum)
		if err != nil {
			return exporterr.Lookup(entry.Checksum, "loading dirmeta: %v", err)
		}
		return s.emitDirMetaIfNew(entry.Checksum, meta)
	default:
		return exporterr.Validation("metadata inventory entry has unsupported object type %v", entry.Type)
	}
}

// writeChunk is the content-emission half shared by ExportChunk and
// ExportFinalChunk: emit content once per checksum, then emit one hardlink
// per associated rendered path, each path passed through v1 rendering (a
// leading "/" stripped, then mapPathV1).
func (s *runState) writeChunk(chunk Chunk) error {
	for _, entry := range chunk.Entries {
		if err := s.checkCancelled(); err != nil {
			return err
		}
		objPath, hdrTemplate, err := s.emitContent(entry.Checksum)
		if err != nil {
			return err
		}
		for _, p := range entry.Paths {
			renderedPath := mapPathV1(strings.TrimPrefix(p, "/"))
			if err := hardlinkEntry(s.tw, renderedPath, objPath, hdrTemplate); err != nil {
				return err
			}
		}
	}
	return nil
}
