package ostreetar

import (
	"archive/tar"
	"bytes"
	"context"
	"testing"

	"github.com/ostreetar/ostree-tar/testutil"
)

// TestEmitContentManyRandomObjectsStayUnique stress-tests object uniqueness
// across a batch of distinct randomly sized content objects, each emitted
// twice to also exercise the dedup path.
func TestEmitContentManyRandomObjectsStayUnique(t *testing.T) {
	repo := newFakeRepo()

	var checksums []string
	for i := 0; i < 25; i++ {
		data, checksum, err := testutil.RandomContent(1, 4096)
		if err != nil {
			t.Fatalf("RandomContent: %v", err)
		}
		repo.addFile(checksum, FileMeta{Mode: 0o100644, Size: int64(len(data)), Type: FileRegular}, data, nil)
		checksums = append(checksums, checksum)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	s := newRunState(context.Background(), tw, repo, ExportOptions{FormatVersion: 1})

	for _, c := range checksums {
		if _, _, err := s.emitContent(c); err != nil {
			t.Fatalf("emitContent(%s): %v", c, err)
		}
	}
	// Re-emit every checksum once more; counts must not change.
	for _, c := range checksums {
		if _, _, err := s.emitContent(c); err != nil {
			t.Fatalf("re-emitContent(%s): %v", c, err)
		}
	}
	tw.Close()

	names := readEntryNames(t, &buf)
	seen := make(map[string]int, len(names))
	for _, n := range names {
		seen[n]++
	}
	for _, c := range checksums {
		objPath := objectPath(ObjectFile, c)
		if seen[objPath] != 1 {
			t.Errorf("object %s emitted %d times, want 1", objPath, seen[objPath])
		}
	}
}
