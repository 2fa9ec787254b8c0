package ostreetar

import (
	"archive/tar"
	"context"
	"io"
	"strings"

	"github.com/ostreetar/ostree-tar/internal/exporterr"
)

// UpdateDetachedMetadata stream-rewrites src into dst, replacing or
// removing the commit's detached CommitMeta entry without
// re-emitting anything else in the stream. detached == nil removes any
// existing CommitMeta entry; a non-nil (possibly empty) detached replaces
// it, inserting one if none was present.
func UpdateDetachedMetadata(ctx context.Context, src io.Reader, dst io.Writer, detached []byte) error {
	tr := tar.NewReader(src)
	tw := tar.NewWriter(dst)

	checksum, err := copyUntilCommitEntry(ctx, tr, tw)
	if err != nil {
		return err
	}

	if detached != nil {
		if err := defaultDataEntry(tw, objectPath(ObjectCommitMeta, checksum), detached); err != nil {
			return err
		}
	}

	if err := dropOrCopyNextEntry(ctx, tr, tw, checksum); err != nil {
		return err
	}

	if err := copyRemainingEntries(ctx, tr, tw); err != nil {
		return err
	}

	return tw.Close()
}

// copyUntilCommitEntry copies entries unchanged until it observes and
// copies the *.commit entry, returning the checksum parsed from its path.
func copyUntilCommitEntry(ctx context.Context, tr *tar.Reader, tw *tar.Writer) (string, error) {
	for {
		if err := checkCtxCancelled(ctx); err != nil {
			return "", err
		}
		hdr, err := tr.Next()
		if err == io.EOF {
			return "", exporterr.Integrity("", "commit entry not found in stream")
		}
		if err != nil {
			return "", exporterr.IO("", "", err)
		}
		if err := copyEntry(tw, hdr, tr); err != nil {
			return "", err
		}
		if hdr.Typeflag == tar.TypeReg {
			if checksum, ok := checksumFromObjectPath(hdr.Name, "commit"); ok {
				return checksum, nil
			}
		}
	}
}

// dropOrCopyNextEntry consumes the entry immediately following the commit
// entry: if it is the CommitMeta entry for checksum, it is discarded;
// otherwise it is copied through unchanged. The stream must not end here.
func dropOrCopyNextEntry(ctx context.Context, tr *tar.Reader, tw *tar.Writer, checksum string) error {
	if err := checkCtxCancelled(ctx); err != nil {
		return err
	}
	hdr, err := tr.Next()
	if err == io.EOF {
		return exporterr.Integrity(objectPath(ObjectCommit, checksum), "stream ends immediately after the commit entry")
	}
	if err != nil {
		return exporterr.IO("", "", err)
	}
	if hdr.Typeflag == tar.TypeReg {
		if c, ok := checksumFromObjectPath(hdr.Name, "commitmeta"); ok && c == checksum {
			return nil
		}
	}
	return copyEntry(tw, hdr, tr)
}

// copyRemainingEntries copies every entry left in tr to tw unchanged,
// honoring cancellation between entries.
func copyRemainingEntries(ctx context.Context, tr *tar.Reader, tw *tar.Writer) error {
	for {
		if err := checkCtxCancelled(ctx); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return exporterr.IO("", "", err)
		}
		if err := copyEntry(tw, hdr, tr); err != nil {
			return err
		}
	}
}

// copyEntry writes hdr to tw and, if hdr carries a body, streams it from tr.
func copyEntry(tw *tar.Writer, hdr *tar.Header, tr *tar.Reader) error {
	if err := tw.WriteHeader(hdr); err != nil {
		return exporterr.IO("", hdr.Name, err)
	}
	if hdr.Size > 0 {
		if _, err := io.Copy(tw, tr); err != nil {
			return exporterr.IO("", hdr.Name, err)
		}
	}
	return nil
}

// checkCtxCancelled is copyUntilCommitEntry/dropOrCopyNextEntry/
// copyRemainingEntries' free-function counterpart to runState.checkCancelled,
// since reinjection has no runState of its own.
func checkCtxCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return cancellationError(err)
	}
	return nil
}

// checksumFromObjectPath parses path as an object path with the given
// suffix and returns the 64-hex checksum it encodes.
func checksumFromObjectPath(path, suffix string) (string, bool) {
	prefix := objectsRoot + "/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	slash := strings.IndexByte(rest, '/')
	if slash != 2 {
		return "", false
	}
	hexPrefix, name := rest[:2], rest[3:]
	suffixDot := "." + suffix
	if !strings.HasSuffix(name, suffixDot) {
		return "", false
	}
	hexRest := strings.TrimSuffix(name, suffixDot)
	if len(hexRest) != 62 {
		return "", false
	}
	return hexPrefix + hexRest, true
}
