package ostreetar

import (
	"github.com/opencontainers/go-digest"
)

// writeXattrs hashes the xattrs blob owned by contentChecksum, emits it
// once (deduplicated by its own hash), then emits a hardlink from
// the owning object's xattr-link path to the blob — every time this is
// called, even when the blob itself was already emitted by a prior object.
//
// Returns whether anything was written at all (false only when the blob is
// empty in format v0, or when IgnoreXattrs is set).
func (s *runState) writeXattrs(contentChecksum string, xattrs []byte) (bool, error) {
	if s.opts.IgnoreXattrs {
		return false, nil
	}
	if len(xattrs) == 0 && s.opts.FormatVersion == 0 {
		return false, nil
	}

	xh := digest.FromBytes(xattrs).Encoded()

	if s.xattrs.addIfAbsent(xh) {
		var blobPath string
		if s.opts.FormatVersion == 0 {
			blobPath = xattrBlobPathV0(xh)
		} else {
			blobPath = xattrBlobPathV1(xh)
		}
		if err := defaultDataEntry(s.tw, blobPath, xattrs); err != nil {
			return false, err
		}
	}

	var linkPath, target string
	if s.opts.FormatVersion == 0 {
		linkPath = xattrLinkPathV0(contentChecksum)
		target = xattrBlobPathV0(xh)
	} else {
		linkPath = xattrLinkPathV1(contentChecksum)
		target = xattrBlobPathV1(xh)
	}
	if err := defaultHardlinkEntry(s.tw, linkPath, target); err != nil {
		return false, err
	}
	return true, nil
}
