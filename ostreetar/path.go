package ostreetar

import "strings"

const usrEtcPrefixV0 = "./usr/etc"
const usrEtcPrefixV1 = "usr/etc"

// mapPath rewrites a v0 rendered path, dot-prefixed as checked out by
// OSTree, moving anything under "./usr/etc" to "./etc". Every other path is
// returned unchanged.
func mapPath(p string) string {
	if p == usrEtcPrefixV0 {
		return "./etc"
	}
	if strings.HasPrefix(p, usrEtcPrefixV0+"/") {
		return "./etc" + p[len(usrEtcPrefixV0):]
	}
	return p
}

// mapPathV1 rewrites a v1 rendered path, relative and not dot-prefixed,
// stripping a leading "usr/" from anything under "usr/etc". p must already
// be relative and non-dot-prefixed; callers strip any leading "/" first.
func mapPathV1(p string) string {
	if p == usrEtcPrefixV1 {
		return "etc"
	}
	if strings.HasPrefix(p, usrEtcPrefixV1+"/") {
		return p[len("usr/"):]
	}
	return p
}
