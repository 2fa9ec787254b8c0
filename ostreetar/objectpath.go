package ostreetar

import "fmt"

const repoRoot = "sysroot/ostree/repo"
const objectsRoot = repoRoot + "/objects"

func splitChecksum(checksum string) (prefix, rest string) {
	return checksum[:2], checksum[2:]
}

// objectSuffix returns the file-extension suffix used for objects of type t.
func objectSuffix(t ObjectType) string {
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
		panic(fmt.Sprintf("ostreetar: unknown object type %d", t))
	}
}

// objectPath returns the canonical in-stream path of object (t, checksum).
func objectPath(t ObjectType, checksum string) string {
	prefix, rest := splitChecksum(checksum)
	return fmt.Sprintf("%s/%s/%s.%s", objectsRoot, prefix, rest, objectSuffix(t))
}

// xattrBlobPathV0 is where an xattr blob lives in the v0 layout, keyed by
// its own hash XH (not the owning content checksum).
func xattrBlobPathV0(xh string) string {
	return fmt.Sprintf("%s/xattrs/%s", repoRoot, xh)
}

// xattrLinkPathV0 is the per-object hardlink into the v0 xattr blob,
// keyed by the owning content checksum C.
func xattrLinkPathV0(contentChecksum string) string {
	prefix, rest := splitChecksum(contentChecksum)
	return fmt.Sprintf("%s/%s/%s.file.xattrs", objectsRoot, prefix, rest)
}

// xattrBlobPathV1 is where an xattr blob lives in the v1 layout, keyed by
// its own hash XH.
func xattrBlobPathV1(xh string) string {
	prefix, rest := splitChecksum(xh)
	return fmt.Sprintf("%s/%s/%s.file-xattrs", objectsRoot, prefix, rest)
}

// xattrLinkPathV1 is the per-object hardlink into the v1 xattr blob, keyed
// by the owning content checksum C.
func xattrLinkPathV1(contentChecksum string) string {
	prefix, rest := splitChecksum(contentChecksum)
	return fmt.Sprintf("%s/%s/%s.file-xattrs-link", objectsRoot, prefix, rest)
}

// configPath is the repo config file's path for the given format version.
func configPath(formatVersion int) string {
	if formatVersion == 0 {
		return "sysroot/config"
	}
	return repoRoot + "/config"
}
