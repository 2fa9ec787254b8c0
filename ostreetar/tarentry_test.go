package ostreetar

import (
	"archive/tar"
	"bytes"
	"testing"
)

func TestFilterMode(t *testing.T) {
	const regularWithType = 0o100644 // S_IFREG | 0644

	if got := filterMode(regularWithType, 0); got != regularWithType {
		t.Errorf("v0 filterMode = %#o, want %#o (type bits preserved)", got, regularWithType)
	}
	if got, want := filterMode(regularWithType, 1), int64(0o644); got != want {
		t.Errorf("v1 filterMode = %#o, want %#o (type bits cleared)", got, want)
	}
}

func TestIsSymlinkDenormal(t *testing.T) {
	for _, tc := range []struct {
		target string
		want   bool
	}{
		{"../../usr/sbin//chkconfig", true},
		{"../usr/bin/blah", false},
		{"", false},
		{"a/b", false},
		{"//", true},
	} {
		if got := isSymlinkDenormal(tc.target); got != tc.want {
			t.Errorf("isSymlinkDenormal(%q) = %v, want %v", tc.target, got, tc.want)
		}
	}
}

func TestWriteSymlinkEntryDenormalLiteral(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	const target = "../../..//sbin/chkconfig"

	if err := writeSymlinkEntry(tw, "etc/foo", 0, 0, 0o777, target); err != nil {
		t.Fatalf("writeSymlinkEntry: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tw.Close: %v", err)
	}

	tr := tar.NewReader(&buf)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("tr.Next: %v", err)
	}
	if hdr.Linkname != target {
		t.Errorf("Linkname = %q, want literal %q", hdr.Linkname, target)
	}
	if hdr.Typeflag != tar.TypeSymlink {
		t.Errorf("Typeflag = %v, want TypeSymlink", hdr.Typeflag)
	}
}

func TestDefaultDataEntryDefaults(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	body := []byte("hello")

	if err := defaultDataEntry(tw, "a/b", body); err != nil {
		t.Fatalf("defaultDataEntry: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tw.Close: %v", err)
	}

	tr := tar.NewReader(&buf)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("tr.Next: %v", err)
	}
	if hdr.Uid != 0 || hdr.Gid != 0 || hdr.Mode != 0o644 || hdr.Size != int64(len(body)) {
		t.Errorf("unexpected header: %+v", hdr)
	}
}
