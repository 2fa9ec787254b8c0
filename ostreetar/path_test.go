package ostreetar

import "testing"

func TestMapPath(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"/", "/"},
		{"./usr/etc/blah", "./etc/blah"},
		{"./usr/etc", "./etc"},
		{"./usr/bin", "./usr/bin"},
		{"./var/lib", "./var/lib"},
	} {
		if got := mapPath(tc.in); got != tc.want {
			t.Errorf("mapPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMapPathV1(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"usr/etc/foo", "etc/foo"},
		{"usr/etc", "etc"},
		{"usr/bin", "usr/bin"},
		{"var/lib", "var/lib"},
	} {
		if got := mapPathV1(tc.in); got != tc.want {
			t.Errorf("mapPathV1(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
