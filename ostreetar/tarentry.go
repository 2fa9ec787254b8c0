package ostreetar

import (
	"archive/tar"
	"io"

	"github.com/ostreetar/ostree-tar/internal/exporterr"
)

const sIFMT = 0o170000

// streamBufSize is the read buffer used to copy regular-file content into
// the tar stream, reused across files within one run.
const streamBufSize = 128 * 1024

// filterMode applies the v0/v1 mode-filter rule: v0 preserves the full
// mode word including file-type bits, v1 clears them.
func filterMode(mode uint32, formatVersion int) int64 {
	if formatVersion == 1 {
		mode &^= sIFMT
	}
	return int64(mode)
}

// writeDir emits a directory entry at path with the given uid/gid/mode
// (already filtered by the caller where applicable).
func writeDir(tw *tar.Writer, path string, uid, gid int, mode int64) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeDir,
		Name:     path,
		Uid:      uid,
		Gid:      gid,
		Mode:     mode,
		Size:     0,
		Format:   tar.FormatGNU,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return exporterr.IO("", path, err)
	}
	return nil
}

// defaultDirEntry emits a directory entry with the fixed default metadata
// (uid=0, gid=0, mode=0755) used by the scaffold.
func defaultDirEntry(tw *tar.Writer, path string) error {
	return writeDir(tw, path, 0, 0, 0o755)
}

// defaultDataEntry emits a regular-file entry with the fixed default
// metadata (uid=0, gid=0, mode=0644, size=len(buf)) and buf as its body.
func defaultDataEntry(tw *tar.Writer, path string, buf []byte) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     path,
		Uid:      0,
		Gid:      0,
		Mode:     0o644,
		Size:     int64(len(buf)),
		Format:   tar.FormatGNU,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return exporterr.IO("", path, err)
	}
	if len(buf) > 0 {
		if _, err := tw.Write(buf); err != nil {
			return exporterr.IO("", path, err)
		}
	}
	return nil
}

// defaultHardlinkEntry emits a Link entry at path referencing target, with
// the fixed default metadata (uid=0, gid=0, mode=0644, size=0).
func defaultHardlinkEntry(tw *tar.Writer, path, target string) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeLink,
		Name:     path,
		Linkname: target,
		Uid:      0,
		Gid:      0,
		Mode:     0o644,
		Size:     0,
		Format:   tar.FormatGNU,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return exporterr.IO("", path, err)
	}
	return nil
}

// hardlinkEntry emits a Link entry at path referencing target, using the
// uid/gid/mode carried by hdrTemplate (size is always forced to 0; Link
// entries must not claim a body).
func hardlinkEntry(tw *tar.Writer, path, target string, hdrTemplate *tar.Header) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeLink,
		Name:     path,
		Linkname: target,
		Uid:      hdrTemplate.Uid,
		Gid:      hdrTemplate.Gid,
		Mode:     hdrTemplate.Mode,
		Size:     0,
		Format:   tar.FormatGNU,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return exporterr.IO("", path, err)
	}
	return nil
}

// writeRegularEntry streams the body of a regular content object from r into
// the tar writer, using a fixed-size reused buffer.
func writeRegularEntry(tw *tar.Writer, path string, uid, gid int, mode, size int64, r io.Reader, buf []byte) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     path,
		Uid:      int(uid),
		Gid:      int(gid),
		Mode:     mode,
		Size:     size,
		Format:   tar.FormatGNU,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return exporterr.IO("", path, err)
	}
	if _, err := io.CopyBuffer(tw, r, buf); err != nil {
		return exporterr.IO("", path, err)
	}
	return nil
}

// isSymlinkDenormal reports whether target contains a "//" sequence, the
// condition under which a symlink entry must be written with a literal link
// name rather than allowing the tar layer to normalize it.
func isSymlinkDenormal(target string) bool {
	for i := 0; i+1 < len(target); i++ {
		if target[i] == '/' && target[i+1] == '/' {
			return true
		}
	}
	return false
}

// writeSymlinkEntry emits a symlink entry for target at path. Denormal
// targets (containing "//") are written with their link name untouched,
// which Go's archive/tar does for any value placed directly into Linkname.
func writeSymlinkEntry(tw *tar.Writer, path string, uid, gid int, mode int64, target string) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeSymlink,
		Name:     path,
		Linkname: target,
		Uid:      int(uid),
		Gid:      int(gid),
		Mode:     mode,
		Size:     0,
		Format:   tar.FormatGNU,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return exporterr.IO("", path, err)
	}
	return nil
}
