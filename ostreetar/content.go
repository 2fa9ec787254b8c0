package ostreetar

import (
	"archive/tar"

	"github.com/ostreetar/ostree-tar/internal/exporterr"
)

// emitContent loads and, if not already emitted, writes the content object
// for checksum, plus its xattrs (written strictly before the
// object itself). Returns the object's in-stream path and a header
// template future hardlinks can copy uid/gid/mode from; the template's Size
// is always 0, since Link entries must not claim a body.
func (s *runState) emitContent(checksum string) (string, *tar.Header, error) {
	objPath := objectPath(ObjectFile, checksum)

	stream, meta, xattrs, err := s.repo.LoadFile(checksum)
	if err != nil {
		return "", nil, exporterr.Lookup(checksum, "loading content object: %v", err)
	}
	if stream != nil {
		defer stream.Close()
	}

	hdrTemplate := &tar.Header{
		Uid:  int(meta.Uid),
		Gid:  int(meta.Gid),
		Mode: filterMode(meta.Mode, s.opts.FormatVersion),
		Size: 0,
	}

	if !s.content.addIfAbsent(checksum) {
		return objPath, hdrTemplate, nil
	}

	if _, err := s.writeXattrs(checksum, xattrs); err != nil {
		return "", nil, err
	}

	switch meta.Type {
	case FileRegular:
		if err := writeRegularEntry(s.tw, objPath, int(meta.Uid), int(meta.Gid), hdrTemplate.Mode, meta.Size, stream, s.buf); err != nil {
			return "", nil, err
		}
		s.stats.recordBytes(meta.Size)
	case FileSymlink:
		if meta.SymlinkTarget == "" {
			return "", nil, exporterr.ValidationChecksum(checksum, "symlink content object has no target")
		}
		if err := writeSymlinkEntry(s.tw, objPath, int(meta.Uid), int(meta.Gid), hdrTemplate.Mode, meta.SymlinkTarget); err != nil {
			return "", nil, err
		}
	default:
		return "", nil, exporterr.ValidationChecksum(checksum, "unsupported content object file type %d", meta.Type)
	}

	s.stats.recordObject(ObjectFile)
	return objPath, hdrTemplate, nil
}
