package ostreetar

import "github.com/ostreetar/ostree-tar/internal/exporterr"

// writeCommit emits the root directory entry, the scaffold, the commit
// (and optional commitmeta) object, the root dirmeta, and then recurses
// into the root dirtree.
func (s *runState) writeCommit(commit Commit, detached []byte) error {
	rootMeta, err := s.repo.LoadDirMeta(commit.RootMetaChecksum)
	if err != nil {
		return exporterr.Lookup(commit.RootMetaChecksum, "loading root dirmeta: %v", err)
	}

	rootPath := "./"
	if s.opts.FormatVersion == 1 {
		rootPath = "."
	}
	if err := writeDir(s.tw, rootPath, int(rootMeta.Uid), int(rootMeta.Gid), filterMode(rootMeta.Mode, s.opts.FormatVersion)); err != nil {
		return err
	}

	if err := s.writeScaffold(); err != nil {
		return err
	}

	if err := s.emitCommitObject(commit, detached); err != nil {
		return err
	}

	if err := s.emitDirMetaIfNew(commit.RootMetaChecksum, rootMeta); err != nil {
		return err
	}

	return s.appendDirTree("", commit.RootTreeChecksum, true)
}

// emitCommitObject writes the commit object and, if present, its detached
// CommitMeta, right after the scaffold and before any other object.
func (s *runState) emitCommitObject(commit Commit, detached []byte) error {
	// The commit object's own serialized bytes are produced by the
	// Repository's variant encoder in a real integration; this package
	// only needs a stable, content-addressed placeholder so the entry is
	// well-formed on the wire.
	if err := defaultDataEntry(s.tw, objectPath(ObjectCommit, commit.Checksum), commitPlaceholder(commit)); err != nil {
		return err
	}
	s.stats.recordObject(ObjectCommit)

	if len(detached) > 0 {
		if err := defaultDataEntry(s.tw, objectPath(ObjectCommitMeta, commit.Checksum), detached); err != nil {
			return err
		}
		s.stats.recordObject(ObjectCommitMeta)
	}
	return nil
}

// emitDirMetaIfNew writes the dirmeta object for checksum if it has not
// already been emitted in this run.
func (s *runState) emitDirMetaIfNew(checksum string, meta DirMeta) error {
	if !s.dirMetas.addIfAbsent(checksum) {
		return nil
	}
	if err := defaultDataEntry(s.tw, objectPath(ObjectDirMeta, checksum), encodeDirMetaPlaceholder(meta)); err != nil {
		return err
	}
	s.stats.recordObject(ObjectDirMeta)
	return nil
}

// appendDirTree is the recursive walk over a commit's directory tree.
// relpath is the logical, un-rendered path of this directory relative to
// the root ("" for the root itself, e.g. "usr/etc" further down);
// dirtreeChecksum identifies the dirtree to serialize; isRoot gates the
// root-level sysroot suppression rule.
func (s *runState) appendDirTree(relpath, dirtreeChecksum string, isRoot bool) error {
	if err := s.checkCancelled(); err != nil {
		return err
	}

	tree, err := s.repo.LoadDirTree(dirtreeChecksum)
	if err != nil {
		return exporterr.Lookup(dirtreeChecksum, "loading dirtree: %v", err)
	}

	if s.dirTrees.addIfAbsent(dirtreeChecksum) {
		if err := defaultDataEntry(s.tw, objectPath(ObjectDirTree, dirtreeChecksum), encodeDirTreePlaceholder(tree)); err != nil {
			return err
		}
		s.stats.recordObject(ObjectDirTree)
	}

	for _, f := range tree.Files {
		objPath, hdrTemplate, err := s.emitContent(f.Checksum)
		if err != nil {
			return err
		}
		renderedPath := s.renderPath(joinRelative(relpath, f.Name))
		if err := hardlinkEntry(s.tw, renderedPath, objPath, hdrTemplate); err != nil {
			return err
		}
	}

	for _, d := range tree.Subdirs {
		meta, err := s.repo.LoadDirMeta(d.MetaChecksum)
		if err != nil {
			return exporterr.Lookup(d.MetaChecksum, "loading dirmeta: %v", err)
		}
		if err := s.emitDirMetaIfNew(d.MetaChecksum, meta); err != nil {
			return err
		}

		if isRoot && d.Name == "sysroot" {
			continue
		}

		childRel := joinRelative(relpath, d.Name)
		renderedChildPath := s.renderPath(childRel)
		if err := writeDir(s.tw, renderedChildPath, int(meta.Uid), int(meta.Gid), filterMode(meta.Mode, s.opts.FormatVersion)); err != nil {
			return err
		}

		if err := s.appendDirTree(childRel, d.TreeChecksum, false); err != nil {
			return err
		}
	}

	return nil
}

// joinRelative builds the logical, dot-free relative path of name under
// relpath ("" at the root).
func joinRelative(relpath, name string) string {
	if relpath == "" {
		return name
	}
	return relpath + "/" + name
}

// renderPath renders a logical relative path to its on-wire form for the
// run's format version: v0 prefixes "./" and applies mapPath; v1 applies
// mapPathV1 directly.
func (s *runState) renderPath(relpath string) string {
	if s.opts.FormatVersion == 0 {
		return mapPath("./" + relpath)
	}
	return mapPathV1(relpath)
}
