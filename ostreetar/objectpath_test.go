package ostreetar

import "testing"

const testChecksum = "b8627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7"

func TestObjectPath(t *testing.T) {
	for _, tc := range []struct {
		t    ObjectType
		want string
	}{
		{ObjectFile, objectsRoot + "/b8/627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7.file"},
		{ObjectCommit, objectsRoot + "/b8/627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7.commit"},
		{ObjectCommitMeta, objectsRoot + "/b8/627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7.commitmeta"},
		{ObjectDirTree, objectsRoot + "/b8/627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7.dirtree"},
		{ObjectDirMeta, objectsRoot + "/b8/627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7.dirmeta"},
	} {
		if got := objectPath(tc.t, testChecksum); got != tc.want {
			t.Errorf("objectPath(%v, ...) = %q, want %q", tc.t, got, tc.want)
		}
	}
}

func TestXattrPaths(t *testing.T) {
	const xh = "0102030405060708091011121314151617181920212223242526272829303132"[:64]

	if got, want := xattrBlobPathV0(xh), repoRoot+"/xattrs/"+xh; got != want {
		t.Errorf("xattrBlobPathV0 = %q, want %q", got, want)
	}
	if got, want := xattrLinkPathV0(testChecksum), objectsRoot+"/b8/627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7.file.xattrs"; got != want {
		t.Errorf("xattrLinkPathV0 = %q, want %q", got, want)
	}
	if got, want := xattrBlobPathV1(xh), objectsRoot+"/01/02030405060708091011121314151617181920212223242526272829303132.file-xattrs"; got != want {
		t.Errorf("xattrBlobPathV1 = %q, want %q", got, want)
	}
	if got, want := xattrLinkPathV1(testChecksum), objectsRoot+"/b8/627e3ef0f255a322d2bd9610cfaaacc8f122b7f8d17c0e7e3caafa160f9fc7.file-xattrs-link"; got != want {
		t.Errorf("xattrLinkPathV1 = %q, want %q", got, want)
	}
}

func TestConfigPath(t *testing.T) {
	if got, want := configPath(0), "sysroot/config"; got != want {
		t.Errorf("configPath(0) = %q, want %q", got, want)
	}
	if got, want := configPath(1), repoRoot+"/config"; got != want {
		t.Errorf("configPath(1) = %q, want %q", got, want)
	}
}
